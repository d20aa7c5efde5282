package controllers

import "testing"

func TestClampPagination(t *testing.T) {
	cases := []struct {
		name      string
		page      int
		limit     int
		wantPage  int
		wantLimit int
	}{
		{"values in range pass through", 3, 20, 3, 20},
		{"page zero becomes one", 0, 15, 1, 15},
		{"negative page becomes one", -2, 15, 1, 15},
		{"limit zero falls back to the default", 1, 0, 1, 15},
		{"negative limit falls back to the default", 1, -5, 1, 15},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page, limit := clampPagination(tc.page, tc.limit, 15)
			if page != tc.wantPage || limit != tc.wantLimit {
				t.Errorf("clampPagination(%d, %d, 15) = (%d, %d), want (%d, %d)",
					tc.page, tc.limit, page, limit, tc.wantPage, tc.wantLimit)
			}
		})
	}
}
