package carriers

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		number      string
		wantCarrier string
		wantCode    int
	}{
		{number: "RA123456789PT", wantCarrier: "CTT Portugal", wantCode: 2151},
		{number: "LX123456789CN", wantCarrier: "China Post", wantCode: 3011},
		{number: "AB123456789GB", wantCarrier: "Royal Mail", wantCode: 1051},
		{number: "CD123456789FR", wantCarrier: "La Poste", wantCode: 1031},
		{number: "EF123456789DE", wantCarrier: "Deutsche Post", wantCode: 1011},
		{number: "9400111899223197428490", wantCarrier: "USPS", wantCode: 100001},
		{number: "3SABCD1234567890", wantCarrier: "PostNL", wantCode: 1071},
		{number: "1Z999AA10123456784", wantCarrier: "UPS", wantCode: 100002},
		{number: "123456789012", wantCarrier: "FedEx", wantCode: 100003},
		{number: "1234567890", wantCarrier: "DHL", wantCode: 100001},
		{number: "NOT-A-TRACKING-NUMBER", wantCarrier: "", wantCode: 0},
		{number: "", wantCarrier: "", wantCode: 0},
	}

	for _, tt := range tests {
		carrier, code := Detect(tt.number)
		if carrier != tt.wantCarrier || code != tt.wantCode {
			t.Fatalf("Detect(%q) = (%q, %d), want (%q, %d)",
				tt.number, carrier, code, tt.wantCarrier, tt.wantCode)
		}
	}
}

func TestDetect_CaseInsensitive(t *testing.T) {
	carrier, code := Detect("1z999aa10123456784")
	if carrier != "UPS" || code != 100002 {
		t.Fatalf("Detect lowercase UPS number = (%q, %d), want (UPS, 100002)", carrier, code)
	}
}

func TestDetect_PrecedenceOverGenericPatterns(t *testing.T) {
	// All-digit USPS numbers must resolve before the generic FedEx/DHL
	// numeric rules get a chance.
	carrier, _ := Detect("940011189922319742849012")
	if carrier != "USPS" {
		t.Fatalf("expected USPS before generic numeric rules, got %q", carrier)
	}
}

func TestTrackingURL_KnownCarrier(t *testing.T) {
	got := TrackingURL("1Z999AA10123456784", "UPS")
	want := "https://www.ups.com/track?tracknum=1Z999AA10123456784"
	if got != want {
		t.Fatalf("TrackingURL = %q, want %q", got, want)
	}
}

func TestTrackingURL_CarrierLookupIsCaseInsensitive(t *testing.T) {
	got := TrackingURL("123456789012", "fedex")
	want := "https://www.fedex.com/fedextrack/?trknbr=123456789012"
	if got != want {
		t.Fatalf("TrackingURL = %q, want %q", got, want)
	}
}

func TestTrackingURL_DetectsCarrierWhenAbsent(t *testing.T) {
	got := TrackingURL("1Z999AA10123456784", "")
	want := "https://www.ups.com/track?tracknum=1Z999AA10123456784"
	if got != want {
		t.Fatalf("TrackingURL = %q, want %q", got, want)
	}
}

func TestTrackingURL_FallsBackToUniversalTracker(t *testing.T) {
	got := TrackingURL("NOT-A-TRACKING-NUMBER", "")
	want := "https://t.17track.net/en#nums=NOT-A-TRACKING-NUMBER"
	if got != want {
		t.Fatalf("TrackingURL = %q, want %q", got, want)
	}
	if got == "" {
		t.Fatal("TrackingURL must never be empty")
	}
}

func TestTrackingURL_UnknownCarrierNameFallsThrough(t *testing.T) {
	// An override we have no template for still resolves via detection.
	got := TrackingURL("1Z999AA10123456784", "Some Courier")
	want := "https://www.ups.com/track?tracknum=1Z999AA10123456784"
	if got != want {
		t.Fatalf("TrackingURL = %q, want %q", got, want)
	}
}
