package utility

// Contains kiểm tra một phần tử có trong slice hay không
func Contains[T comparable](slice []T, item T) bool {
	for _, v := range slice {
		if v == item {
			return true
		}
	}
	return false
}

// ContainsFunc kiểm tra có phần tử nào trong slice thỏa điều kiện hay không
func ContainsFunc[T any](slice []T, pred func(T) bool) bool {
	for _, v := range slice {
		if pred(v) {
			return true
		}
	}
	return false
}

// Filter trả về slice mới chỉ chứa các phần tử thỏa điều kiện
func Filter[T any](slice []T, pred func(T) bool) []T {
	result := make([]T, 0, len(slice))
	for _, v := range slice {
		if pred(v) {
			result = append(result, v)
		}
	}
	return result
}
