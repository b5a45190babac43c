package services

// patchField overwrites dst with the patch value when one is provided and
// it differs from the current value. It reports whether dst changed.
func patchField[T comparable](dst *T, patch *T) bool {
	if patch == nil || *patch == *dst {
		return false
	}
	*dst = *patch
	return true
}
