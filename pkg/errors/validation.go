package errors

// maxNameLen bounds identifiers sent to the API; the longest real species
// name is well under this.
const maxNameLen = 64

// ValidateName checks that name looks like a PokeAPI identifier before it is
// interpolated into a request path.
//
// PokeAPI identifiers are lowercase ASCII letters, digits and hyphens
// ("bulbasaur", "mr-mime", "porygon-z"). Anything else is rejected so a
// user-supplied value can never alter the request path.
func ValidateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "name cannot be empty")
	}
	if len(name) > maxNameLen {
		return New(ErrCodeInvalidInput, "name too long (max %d characters)", maxNameLen)
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
		case r >= 'A' && r <= 'Z':
			return New(ErrCodeInvalidInput, "name %q must be lowercase", name)
		default:
			return New(ErrCodeInvalidInput, "name %q contains invalid character %q", name, r)
		}
	}
	return nil
}

// ValidatePage checks that page lies within [1, total].
func ValidatePage(page, total int) error {
	if page < 1 || page > total {
		return New(ErrCodeInvalidInput, "page %d out of range (1-%d)", page, total)
	}
	return nil
}
