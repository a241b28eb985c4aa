package export

import (
	"testing"

	"github.com/dougthor42/gdw/internal/engine"
	"github.com/dougthor42/gdw/internal/model"
)

// buildTestResult computes a realistic 150mm wafer map for export tests.
func buildTestResult(t *testing.T) (model.GridResult, model.Wafer, model.DieSize) {
	t.Helper()

	wafer, err := model.NewWafer(150, 4.5, 4.5, 57.5)
	if err != nil {
		t.Fatalf("NewWafer failed: %v", err)
	}
	die, err := model.NewDieSize(5, 5)
	if err != nil {
		t.Fatalf("NewDieSize failed: %v", err)
	}

	res, err := engine.New(engine.DefaultSettings()).Compute(wafer, die,
		model.ParityOffset(model.AlignEven, model.AlignEven))
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	return res, wafer, die
}
