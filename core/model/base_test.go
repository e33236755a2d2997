package model

import "testing"

func TestBaseEstimator(t *testing.T) {
	var e BaseEstimator

	if e.IsFitted() {
		t.Error("zero value should not be fitted")
	}

	e.SetFitted()
	if !e.IsFitted() {
		t.Error("SetFitted() did not mark the estimator fitted")
	}

	e.Reset()
	if e.IsFitted() {
		t.Error("Reset() did not clear the fitted state")
	}
}
