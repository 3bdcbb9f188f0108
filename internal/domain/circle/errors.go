package circle

import "errors"

var (
	// ErrCircleNotFound indicates the circle doesn't exist.
	ErrCircleNotFound = errors.New("circle not found")
	// ErrInviteNotFound indicates no circle matches the invite code.
	ErrInviteNotFound = errors.New("invite code not found")
	// ErrNotMember indicates the user doesn't belong to the circle.
	ErrNotMember = errors.New("not a member of this circle")
	// ErrAlreadyMember indicates the user already joined.
	ErrAlreadyMember = errors.New("already a member of this circle")
	// ErrNotOwner indicates an owner-only operation.
	ErrNotOwner = errors.New("only the circle owner may do this")
	// ErrOwnerCannotLeave indicates the owner must delete instead of leave.
	ErrOwnerCannotLeave = errors.New("owner cannot leave their own circle")
	// ErrInvalidInput indicates invalid circle input.
	ErrInvalidInput = errors.New("invalid circle input")
)
