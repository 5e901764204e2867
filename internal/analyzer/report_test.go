package analyzer

import (
	"testing"

	"torchlint/internal/tester"
)

func TestFormatEmpty(t *testing.T) {
	tester.Eq(t, Format(nil), NoIssues)
	tester.Eq(t, Format([]Issue{}), NoIssues)
}

func TestFormatLines(t *testing.T) {
	got := Format([]Issue{
		{Line: 3, Message: "Tensor created without device assignment", Fix: "x.to(device)"},
		{Line: 7, Message: "Missing retain_graph in backward()", Fix: "retain_graph=True"},
	})
	want := "Line 3: Tensor created without device assignment: x.to(device)\n" +
		"Line 7: Missing retain_graph in backward(): retain_graph=True"
	tester.Eq(t, got, want)
}
