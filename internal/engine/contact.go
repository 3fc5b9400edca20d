package engine

// ContactDate is one date read from a vCard contact, ready to seed the editor.
type ContactDate struct {
	// UID is a stable hash of the contact name, kind and original value.
	UID string

	// Name is the display name (Formatted Name or Structured Name).
	Name string

	// Kind is config.KindBirthday or config.KindAnniversary.
	Kind string

	// Date is the value in the editor's calendar. When YearKnown is false the
	// year comes from the importer's clock.
	Date Date

	// YearKnown indicates if the vCard contained a year or just --MM-DD.
	YearKnown bool
}
