package pure_utils

// Map returns a new slice with the same length as src, but with values
// transformed by f.
func Map[T, U any](src []T, f func(T) U) []U {
	us := make([]U, len(src))
	for i := range src {
		us[i] = f(src[i])
	}
	return us
}

// MapSliceToMap builds a map from a slice, keyed and valued by f.
func MapSliceToMap[T, V any, K comparable](input []T, f func(v T) (K, V)) map[K]V {
	output := make(map[K]V, len(input))
	for _, item := range input {
		k, v := f(item)
		output[k] = v
	}
	return output
}
