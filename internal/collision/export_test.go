package collision

// injectCollision registers name under an arbitrary hash so the collision
// fallback can be exercised without a real xxHash64 collision.
func (t *Tracker) injectCollision(name string, id uint64) {
	if _, exists := t.byHash[id]; exists {
		t.hasCollision = true
	} else {
		t.byHash[id] = len(t.names)
	}
	t.names = append(t.names, name)
}
