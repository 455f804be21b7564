package charts

import (
	"bytes"
	"testing"

	"expenseflow/internal/core"
)

func TestRenderExpensePie(t *testing.T) {
	breakdown := []core.CategoryShare{
		{Category: "Food", Amount: core.Money{Cents: 17500}, Percentage: 87.5},
		{Category: "Transport", Amount: core.Money{Cents: 2500}, Percentage: 12.5},
	}

	png, err := RenderExpensePie(breakdown)
	if err != nil {
		t.Fatalf("RenderExpensePie() failed: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}

func TestRenderExpensePieEmpty(t *testing.T) {
	png, err := RenderExpensePie(nil)
	if err != nil {
		t.Fatalf("RenderExpensePie(nil) failed: %v", err)
	}
	if png != nil {
		t.Errorf("RenderExpensePie(nil) = %d bytes, want nil", len(png))
	}
}
