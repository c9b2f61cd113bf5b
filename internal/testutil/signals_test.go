package testutil

import "testing"

func TestRandomCodesInRange(t *testing.T) {
	for _, v := range RandomCodes(1, 5, 200) {
		if v > 31 {
			t.Fatalf("code %d exceeds 5-bit range", v)
		}
	}
}
