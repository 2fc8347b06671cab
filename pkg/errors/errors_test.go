package errors

import (
	"fmt"
	"math"
	"os"
	"strings"
	"testing"
)

func TestNewModelError(t *testing.T) {
	tests := []struct {
		name     string
		op       string
		kind     string
		err      error
		wantMsg  string
		hasStack bool
	}{
		{
			name:     "with original error",
			op:       "LinearRegression.Fit",
			kind:     "singular matrix",
			err:      fmt.Errorf("test error"),
			wantMsg:  "medcost: LinearRegression.Fit: singular matrix: test error",
			hasStack: true,
		},
		{
			name:     "without original error",
			op:       "LoadModel",
			kind:     "not fitted",
			err:      nil,
			wantMsg:  "medcost: LoadModel: not fitted",
			hasStack: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewModelError(tt.op, tt.kind, tt.err)

			// 基本的なエラーメッセージの確認
			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			// スタックトレースの存在確認
			if tt.hasStack {
				formatted := fmt.Sprintf("%+v", err)
				if !strings.Contains(formatted, "errors_test.go") {
					t.Error("Expected stack trace to contain test file name")
				}
			}

			var modelErr *ModelError
			if !As(err, &modelErr) {
				t.Error("Error should be castable to *ModelError")
			}
		})
	}
}

func TestNewDimensionError(t *testing.T) {
	err := NewDimensionError("Model.Predict", 6, 5, 1)

	want := "medcost: Model.Predict: dimension mismatch on axis 1 (features). Expected 6, got 5"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var dimErr *DimensionError
	if !As(err, &dimErr) {
		t.Fatal("Error should be castable to *DimensionError")
	}
	if dimErr.Expected != 6 || dimErr.Got != 5 {
		t.Errorf("unexpected fields: %+v", dimErr)
	}
}

func TestNewNotFittedError(t *testing.T) {
	err := NewNotFittedError("LinearRegression", "Predict")

	want := "medcost: LinearRegression: this model is not fitted yet. Call Fit() before using Predict()"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var notFittedErr *NotFittedError
	if !As(err, &notFittedErr) {
		t.Error("Error should be castable to *NotFittedError")
	}
}

func TestNewMissingFieldsError(t *testing.T) {
	fields := []string{"sex", "region"}
	err := NewMissingFieldsError(fields)

	want := "medcost: missing required fields: sex, region"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var missing *MissingFieldsError
	if !As(err, &missing) {
		t.Fatal("Error should be castable to *MissingFieldsError")
	}

	// 呼び出し側のスライスを変更しても影響しないこと
	fields[0] = "age"
	if missing.Fields[0] != "sex" {
		t.Errorf("Fields should be copied, got %v", missing.Fields)
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("age", "must be within [0, 120]", 121)

	want := "medcost: validation failed for parameter 'age': must be within [0, 120] (got: 121)"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var valErr *ValidationError
	if !As(err, &valErr) {
		t.Error("Error should be castable to *ValidationError")
	}
}

func TestNewIOError(t *testing.T) {
	err := NewIOError("open", "model.json", os.ErrNotExist)

	if !strings.Contains(err.Error(), "open model.json") {
		t.Errorf("unexpected message: %v", err)
	}
	if !Is(err, os.ErrNotExist) {
		t.Error("IOError should unwrap to the underlying cause")
	}

	var ioErr *IOError
	if !As(err, &ioErr) {
		t.Fatal("Error should be castable to *IOError")
	}
	if ioErr.Path != "model.json" {
		t.Errorf("Path = %q", ioErr.Path)
	}
}

func TestNewValueError(t *testing.T) {
	err := NewValueError("MSE", "empty vector")
	if err.Error() != "medcost: MSE: empty vector" {
		t.Errorf("Error() = %v", err)
	}

	var valErr *ValueError
	if !As(err, &valErr) {
		t.Error("Error should be castable to *ValueError")
	}
}

func TestWrapAndIs(t *testing.T) {
	wrapped := Wrap(ErrModelUnavailable, "in web.handlePredict")

	if !Is(wrapped, ErrModelUnavailable) {
		t.Error("Expected Is(wrapped, ErrModelUnavailable) to be true")
	}
	if !strings.Contains(wrapped.Error(), "in web.handlePredict") {
		t.Error("Expected wrapped error to contain wrapping message")
	}
}

func TestWrapf(t *testing.T) {
	wrapped := Wrapf(ErrEmptyData, "in %s: expected %d rows, got %d", "Fit", 10, 0)

	if !Is(wrapped, ErrEmptyData) {
		t.Error("Expected Is(wrapped, ErrEmptyData) to be true")
	}
	if !strings.Contains(wrapped.Error(), "in Fit: expected 10 rows, got 0") {
		t.Errorf("unexpected message: %v", wrapped)
	}
}

func TestErrorChaining(t *testing.T) {
	err1 := fmt.Errorf("base error")
	err2 := Wrap(err1, "wrapped once")
	err3 := NewModelError("Operation", "failed", err2)

	if !strings.Contains(err3.Error(), "base error") {
		t.Error("Expected error chain to contain base error")
	}

	formatted := fmt.Sprintf("%+v", err3)
	if !strings.Contains(formatted, "errors_test.go") {
		t.Error("Expected detailed error to contain stack trace")
	}
}

func TestCheckNumericalStability(t *testing.T) {
	if err := CheckNumericalStability("weights", []float64{1, 2, 3}); err != nil {
		t.Fatalf("finite values should pass: %v", err)
	}

	err := CheckNumericalStability("weights", []float64{1, math.NaN(), 3})
	var numErr *NumericalInstabilityError
	if !As(err, &numErr) {
		t.Fatalf("expected NumericalInstabilityError, got %v", err)
	}
	if numErr.Iteration != 1 {
		t.Errorf("index = %d, want 1", numErr.Iteration)
	}

	if err := CheckScalar("bmi", math.Inf(1)); err == nil {
		t.Error("Inf should be rejected")
	}
}
