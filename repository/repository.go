package repository

// Repositories bundles every typed repository over one Store.
type Repositories struct {
	Users        *Users
	Appointments *Appointments
	Assessments  *Assessments
	Blog         *BlogPosts
	Contacts     *Contacts
	DeadLetters  *DeadLetters
}

func New(store *Store) *Repositories {
	return &Repositories{
		Users:        NewUsers(store),
		Appointments: NewAppointments(store),
		Assessments:  NewAssessments(store),
		Blog:         NewBlogPosts(store),
		Contacts:     NewContacts(store),
		DeadLetters:  NewDeadLetters(store),
	}
}
