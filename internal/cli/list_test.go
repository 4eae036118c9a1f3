package cli

import (
	"strings"
	"testing"

	"github.com/nmoreno/obligo/internal/api"
)

func TestTruncateText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{
			name: "short text unchanged",
			in:   "pay rent",
			max:  60,
			want: "pay rent",
		},
		{
			name: "exact length unchanged",
			in:   "abcde",
			max:  5,
			want: "abcde",
		},
		{
			name: "long text gets ellipsis",
			in:   "abcdef",
			max:  5,
			want: "abcd…",
		},
		{
			name: "multibyte runes counted as one",
			in:   "日本語のテキスト",
			max:  4,
			want: "日本語…",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncateText(tt.in, tt.max); got != tt.want {
				t.Errorf("truncateText(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}

func TestShortID(t *testing.T) {
	if got := shortID("123e4567-e89b-12d3-a456-426614174000"); got != "123e4567" {
		t.Errorf("expected 8-char prefix, got %q", got)
	}
	if got := shortID("abc"); got != "abc" {
		t.Errorf("short ids pass through, got %q", got)
	}
}

func TestObligationRow(t *testing.T) {
	row := obligationRow(api.Obligation{
		ID:             "123e4567-e89b-12d3-a456-426614174000",
		ObligationText: "pay rent within 30 days",
		PartyName:      "Tenant",
		Priority:       api.PriorityHigh,
		JiraIssueID:    "MOCK-7",
	})

	cols := strings.Split(row, "\t")
	if len(cols) != 6 {
		t.Fatalf("expected 6 columns, got %d: %q", len(cols), row)
	}
	if cols[0] != "123e4567" {
		t.Errorf("id column: %q", cols[0])
	}
	if cols[3] != "-" {
		t.Errorf("empty deadline should render as dash, got %q", cols[3])
	}
	if cols[4] != "MOCK-7" {
		t.Errorf("issue column: %q", cols[4])
	}
}

func TestBuildUpdateFromFlags(t *testing.T) {
	t.Run("only set flags are sent", func(t *testing.T) {
		cmd := updateCmd
		if err := cmd.Flags().Set("party", "Acme Corp"); err != nil {
			t.Fatal(err)
		}
		upd, err := buildUpdateFromFlags(cmd)
		if err != nil {
			t.Fatal(err)
		}
		if upd.PartyName == nil || *upd.PartyName != "Acme Corp" {
			t.Errorf("party not set: %+v", upd)
		}
		if upd.ObligationText != nil || upd.Priority != nil {
			t.Errorf("unset flags must stay nil: %+v", upd)
		}
	})

	t.Run("invalid priority rejected", func(t *testing.T) {
		cmd := updateCmd
		if err := cmd.Flags().Set("priority", "Urgent"); err != nil {
			t.Fatal(err)
		}
		if _, err := buildUpdateFromFlags(cmd); err == nil {
			t.Error("expected error for invalid priority")
		}
	})
}
