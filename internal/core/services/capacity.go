package services

// CanAdmit reports whether a room with the given capacity can take one more
// occupant on top of currentOccupants. Kept free of I/O so the rule can be
// tested on its own and reused by any future transfer path. A capacity of
// zero always rejects.
func CanAdmit(capacity, currentOccupants int) bool {
	if capacity <= 0 {
		return false
	}
	return currentOccupants < capacity
}
