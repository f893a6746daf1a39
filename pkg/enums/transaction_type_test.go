package enums

import "testing"

func TestParseTransactionType(t *testing.T) {
	tests := []struct {
		raw     string
		want    TransactionType
		wantErr bool
	}{
		{raw: "IN", want: TransactionTypeIn},
		{raw: "out", want: TransactionTypeOut},
		{raw: " In ", want: TransactionTypeIn},
		{raw: "TRANSFER", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseTransactionType(tt.raw)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ParseTransactionType(%q) expected error", tt.raw)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseTransactionType(%q) unexpected error: %v", tt.raw, err)
		}
		if got != tt.want {
			t.Fatalf("ParseTransactionType(%q) = %s, want %s", tt.raw, got, tt.want)
		}
	}
}

func TestTransactionTypeDelta(t *testing.T) {
	if got := TransactionTypeIn.Delta(15); got != 15 {
		t.Fatalf("expected +15, got %d", got)
	}
	if got := TransactionTypeOut.Delta(15); got != -15 {
		t.Fatalf("expected -15, got %d", got)
	}
}

func TestTransactionTypeIsValid(t *testing.T) {
	if !TransactionTypeIn.IsValid() || !TransactionTypeOut.IsValid() {
		t.Fatal("canonical values must be valid")
	}
	if TransactionType("in").IsValid() {
		t.Fatal("lowercase value is not the canonical storage form")
	}
}
