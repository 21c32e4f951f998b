package services

import "testing"

func TestEnumValidators(t *testing.T) {
	cases := []struct {
		name  string
		check func(string) bool
		ok    []string
		bad   []string
	}{
		{"genre", IsValidGenre, []string{"action", "fighting", "racing"}, []string{"", "Action", "mmo"}},
		{"category", IsValidProductCategory, []string{"accessories", "gift_cards"}, []string{"giftcards", "food"}},
		{"payment method", IsValidPaymentMethod, []string{"credit_card", "bank_transfer"}, []string{"cash", "crypto"}},
		{"game status", IsValidGameStatus, []string{"active", "inactive", "coming_soon"}, []string{"archived", "soon"}},
		{"member role", IsValidMemberRole, []string{"USER", "ADMIN"}, []string{"user", "root"}},
	}

	for _, tc := range cases {
		for _, v := range tc.ok {
			if !tc.check(v) {
				t.Errorf("%s: %q rejected, want accepted", tc.name, v)
			}
		}
		for _, v := range tc.bad {
			if tc.check(v) {
				t.Errorf("%s: %q accepted, want rejected", tc.name, v)
			}
		}
	}
}
