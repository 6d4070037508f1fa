package adminui

import (
	"fmt"

	"skillswap/internal/domain"
)

func userType(u domain.User) string {
	switch {
	case u.IsAdmin:
		return "Admin"
	case !u.IsPublic:
		return "Private"
	default:
		return "User"
	}
}

func formatAverage(avg *float64) string {
	if avg == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.1f", *avg)
}

func pluralUsers(n int) string {
	if n == 1 {
		return "1 user"
	}
	return fmt.Sprintf("%d users", n)
}
