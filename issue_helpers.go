package linkedroles

// issueOf wraps a single issue of the given category into an error.
func issueOf(kind error, it Issue) error {
	it.Kind = kind
	return Issues{it}
}
