package domain

// Session is the username+room state tracked for one live connection.
// A session exists iff the connection has completed at least one
// successful join_room and has not disconnected yet.
type Session struct {
	ConnID   string
	Username string
	Room     string
}
