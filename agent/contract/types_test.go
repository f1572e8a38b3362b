package contract

import "testing"

func TestParseOrderStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want OrderStatus
		ok   bool
	}{
		{"pending", StatusPending, true},
		{"SHIPPED", StatusShipped, true},
		{"  Delivered  ", StatusDelivered, true},
		{"Cancelled", StatusCancelled, true},
		{"refunded", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, ok := ParseOrderStatus(tc.raw)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseOrderStatus(%q) = (%q, %v), want (%q, %v)", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}
