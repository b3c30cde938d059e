package tracking

import "testing"

func TestStatusForCode(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{code: 0, want: "Not Found"},
		{code: 10, want: "In Transit"},
		{code: 20, want: "Expired"},
		{code: 30, want: "Pick Up"},
		{code: 35, want: "Undelivered"},
		{code: 40, want: "Delivered"},
		{code: 50, want: "Alert"},
		{code: 99, want: "Unknown (99)"},
		{code: -1, want: "Unknown (-1)"},
	}

	for _, tt := range tests {
		if got := StatusForCode(tt.code); got != tt.want {
			t.Fatalf("StatusForCode(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestStatusEmoji(t *testing.T) {
	if got := StatusEmoji(StatusDelivered); got != "✅" {
		t.Fatalf("StatusEmoji(Delivered) = %q, want ✅", got)
	}
	if got := StatusEmoji("Unknown (99)"); got != "📦" {
		t.Fatalf("StatusEmoji for unknown status = %q, want 📦", got)
	}
}
