package testimonial

import "testing"

func TestSatisfactionRate(t *testing.T) {
	tests := []struct {
		name    string
		average float64
		total   int
		want    int
	}{
		{name: "no reviews defaults to perfect", average: 0, total: 0, want: 100},
		{name: "all five stars", average: 5, total: 10, want: 100},
		{name: "average 4.6", average: 4.6, total: 25, want: 92},
		{name: "average 4.0", average: 4, total: 3, want: 80},
		{name: "rounds half up", average: 4.525, total: 2, want: 91},
		{name: "single one star", average: 1, total: 1, want: 20},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := SatisfactionRate(tc.average, tc.total)

			if got != tc.want {
				t.Fatalf("SatisfactionRate(%v, %d) = %d, want %d", tc.average, tc.total, got, tc.want)
			}
		})
	}
}

func TestRound1(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{in: 4.649, want: 4.6},
		{in: 4.65, want: 4.7},
		{in: 5, want: 5},
		{in: 0, want: 0},
	}

	for _, tc := range tests {
		got := Round1(tc.in)

		if got != tc.want {
			t.Errorf("Round1(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNewFromCreateRequestNeverApproved(t *testing.T) {
	got := NewFromCreateRequest(CreateTestimonialRequest{
		ClientName:  "  Jane Doe ",
		ClientEmail: "JANE@Example.COM",
		Rating:      5,
		Testimonial: "Great work.",
	})

	if got.IsApproved {
		t.Fatal("new testimonials must start unapproved")
	}

	if got.IsFeatured {
		t.Fatal("new testimonials must start unfeatured")
	}

	if got.ClientName != "Jane Doe" {
		t.Errorf("clientName = %q, want trimmed", got.ClientName)
	}

	if got.ClientEmail != "jane@example.com" {
		t.Errorf("clientEmail = %q, want lowercased", got.ClientEmail)
	}
}
