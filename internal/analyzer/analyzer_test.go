package analyzer

import (
	"errors"
	"testing"

	"torchlint/internal/tester"
)

func TestAnalyzeCleanSource(t *testing.T) {
	src := []byte(`x = torch.Tensor(data).to(device)
loss = criterion(output, target)
loss.backward(retain_graph=True)
`)
	issues, err := Analyze(src)
	tester.NoErr(t, err)
	tester.Eq(t, len(issues), 0)
}

func TestAnalyzeUnplacedTensor(t *testing.T) {
	issues, err := Analyze([]byte("x = torch.Tensor(data)\n"))
	tester.NoErr(t, err)
	tester.Eq(t, issues, []Issue{{
		Line:    1,
		Message: "Tensor created without device assignment",
		Fix:     "x.to(device)",
	}})
}

// A bare Tensor(...) call has an identifier function, not an attribute.
// Both shapes must trigger the allocation matcher.
func TestAnalyzeBareTensorCall(t *testing.T) {
	issues, err := Analyze([]byte("w = Tensor(data)\n"))
	tester.NoErr(t, err)
	tester.Eq(t, len(issues), 1)
	tester.Eq(t, issues[0].Fix, "w.to(device)")
}

func TestAnalyzeDeviceCallInSubtree(t *testing.T) {
	issues, err := Analyze([]byte("x = torch.Tensor(weights.to(device))\n"))
	tester.NoErr(t, err)
	tester.Eq(t, len(issues), 0)
}

// A non-identifier target falls back to the literal "tensor".
func TestAnalyzeFallbackTarget(t *testing.T) {
	issues, err := Analyze([]byte("cache[0] = torch.Tensor(data)\n"))
	tester.NoErr(t, err)
	tester.Eq(t, len(issues), 1)
	tester.Eq(t, issues[0].Fix, "tensor.to(device)")
}

func TestAnalyzeMissingRetainGraph(t *testing.T) {
	issues, err := Analyze([]byte("loss.backward()\n"))
	tester.NoErr(t, err)
	tester.Eq(t, issues, []Issue{{
		Line:    1,
		Message: "Missing retain_graph in backward()",
		Fix:     "retain_graph=True",
	}})

	issues, err = Analyze([]byte("loss.backward(retain_graph=True)\n"))
	tester.NoErr(t, err)
	tester.Eq(t, len(issues), 0)
}

// backward() as a plain function call structurally has no attribute name and
// must not match.
func TestAnalyzeBareBackwardIgnored(t *testing.T) {
	issues, err := Analyze([]byte("backward()\n"))
	tester.NoErr(t, err)
	tester.Eq(t, len(issues), 0)
}

func TestAnalyzeIssueOrdering(t *testing.T) {
	issues, err := Analyze([]byte("x = torch.Tensor(data)\nloss.backward()\n"))
	tester.NoErr(t, err)
	tester.Eq(t, len(issues), 2)
	tester.Eq(t, issues[0].Line, 1)
	tester.Eq(t, issues[0].Message, "Tensor created without device assignment")
	tester.Eq(t, issues[1].Line, 2)
	tester.Eq(t, issues[1].Message, "Missing retain_graph in backward()")

	issues, err = Analyze([]byte("loss.backward()\nx = torch.Tensor(data)\n"))
	tester.NoErr(t, err)
	tester.Eq(t, len(issues), 2)
	tester.Eq(t, issues[0].Line, 1)
	tester.Eq(t, issues[0].Message, "Missing retain_graph in backward()")
	tester.Eq(t, issues[1].Line, 2)
}

// Issues are a sequence, not a set: two findings on one line both survive.
func TestAnalyzeDuplicatesPreserved(t *testing.T) {
	issues, err := Analyze([]byte("loss.backward(); loss.backward()\n"))
	tester.NoErr(t, err)
	tester.Eq(t, len(issues), 2)
	tester.Eq(t, issues[0].Line, 1)
	tester.Eq(t, issues[1].Line, 1)
}

func TestAnalyzeNestedInFunction(t *testing.T) {
	src := []byte(`def train(data):
    t = torch.Tensor(data)
    loss.backward()
`)
	issues, err := Analyze(src)
	tester.NoErr(t, err)
	tester.Eq(t, len(issues), 2)
	tester.Eq(t, issues[0].Line, 2)
	tester.Eq(t, issues[0].Fix, "t.to(device)")
	tester.Eq(t, issues[1].Line, 3)
}

func TestAnalyzeSyntaxError(t *testing.T) {
	_, err := Analyze([]byte("def f(:\n"))
	tester.Err(t, err)
	tester.True(t, errors.Is(err, ErrSyntax), "error wraps ErrSyntax")
}
