package library

// UserDirectory holds the registered users. New users are logically
// prepended, so lookups see the most recently added user first.
type UserDirectory struct {
	users []*User // oldest first; iterate backwards
}

// NewUserDirectory creates an empty directory.
func NewUserDirectory() *UserDirectory {
	return &UserDirectory{}
}

// AddUser registers a user without an active loan. User ids are not checked
// for uniqueness; a later user with the same id shadows the earlier one.
func (d *UserDirectory) AddUser(id int, name string) *User {
	u := &User{ID: id, Name: name}
	d.users = append(d.users, u)
	return u
}

// FindByID scans the directory for id.
func (d *UserDirectory) FindByID(id int) (*User, bool) {
	for i := len(d.users) - 1; i >= 0; i-- {
		if d.users[i].ID == id {
			return d.users[i], true
		}
	}
	return nil, false
}

// All returns the users in directory order, most recently added first.
func (d *UserDirectory) All() []*User {
	all := make([]*User, 0, len(d.users))
	for i := len(d.users) - 1; i >= 0; i-- {
		all = append(all, d.users[i])
	}
	return all
}

// Len is the number of registered users.
func (d *UserDirectory) Len() int { return len(d.users) }

// SeedUsers registers the three users every fresh directory starts with.
func SeedUsers(d *UserDirectory) {
	d.AddUser(101, "Alice")
	d.AddUser(102, "Bob")
	d.AddUser(103, "Charlie")
}
