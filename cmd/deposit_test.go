package cmd

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/subcommands"
)

// TestDepositAppendsCanonicalRecord tests the exact line appended to the journal file
func TestDepositAppendsCanonicalRecord(t *testing.T) {
	tempJournal := filepath.Join(t.TempDir(), "journal.jsonl")

	oldJournalFile := journalFile
	journalFile = &tempJournal
	defer func() { journalFile = oldJournalFile }()

	cmd := &depositCmd{}
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	cmd.SetFlags(f)
	f.Set("d", "2024-01-02")
	f.Set("a", "100000")
	f.Set("m", "seed capital")

	if status := cmd.Execute(context.Background(), f); status != subcommands.ExitSuccess {
		t.Fatalf("Expected ExitSuccess, got %v", status)
	}

	gotContent, err := os.ReadFile(tempJournal)
	if err != nil {
		t.Fatalf("Failed to read journal file: %v", err)
	}
	want := `{"record":"deposit","date":"2024-01-02","memo":"seed capital","currency":"INR","amount":100000}`
	if strings.TrimSpace(string(gotContent)) != want {
		t.Errorf("Journal content mismatch.\nGot:\n%s\nWant:\n%s", string(gotContent), want)
	}
}

// TestWithdrawAppendsToExistingJournal tests appending after existing records
func TestWithdrawAppendsToExistingJournal(t *testing.T) {
	existing := `{"record":"deposit","date":"2024-01-02","currency":"INR","amount":100000}
`
	tempJournal := createTempJournal(t, existing)

	oldJournalFile := journalFile
	journalFile = &tempJournal
	defer func() { journalFile = oldJournalFile }()

	cmd := &withdrawCmd{}
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	cmd.SetFlags(f)
	f.Set("d", "2024-02-01")
	f.Set("a", "5000")

	if status := cmd.Execute(context.Background(), f); status != subcommands.ExitSuccess {
		t.Fatalf("Expected ExitSuccess, got %v", status)
	}

	gotContent, err := os.ReadFile(tempJournal)
	if err != nil {
		t.Fatalf("Failed to read journal file: %v", err)
	}
	want := existing + `{"record":"withdrawal","date":"2024-02-01","currency":"INR","amount":5000}
`
	if string(gotContent) != want {
		t.Errorf("Journal content mismatch.\nGot:\n%s\nWant:\n%s", string(gotContent), want)
	}
}

// TestDepositRejectsMissingAmount tests that a deposit without an amount is a usage error
func TestDepositRejectsMissingAmount(t *testing.T) {
	tempJournal := filepath.Join(t.TempDir(), "journal.jsonl")

	oldJournalFile := journalFile
	journalFile = &tempJournal
	defer func() { journalFile = oldJournalFile }()

	cmd := &depositCmd{}
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	cmd.SetFlags(f)

	if status := cmd.Execute(context.Background(), f); status != subcommands.ExitUsageError {
		t.Errorf("Expected ExitUsageError, got %v", status)
	}
}
