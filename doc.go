// Package stepgo provides exploratory regression modeling for small tabular
// and geospatial datasets: a named-column numeric dataset type, ordinary
// least squares fitting with adjusted-R² scoring, and a greedy
// forward-selection model search.
//
// # Packages
//
//   - dataset: rectangular named-column numeric data, sorting, and the
//     train/validate/test split
//   - linear: OLS fitting, prediction, scoring and coefficient summaries
//   - stepwise: greedy forward-selection model search
//   - metrics: regression metrics (MSE, RMSE, MAE, R², adjusted R²)
//   - preprocessing: standardization and log1p transforms
//   - crimedata: open-data retrieval, spatial join and per-tract aggregation
//   - diagnostics: residual and prediction plots
//
// # Quick start
//
//	ds, err := dataset.New(
//	    []string{"rate", "poverty", "vacancy"},
//	    [][]float64{rates, poverty, vacancy},
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	model, err := stepwise.ForwardSelect(ds, "rate",
//	    stepwise.WithProgress(func(s stepwise.Step) {
//	        fmt.Printf("step %d: +%s (adj R² %.4f)\n", s.Index, s.Variable, s.Score)
//	    }),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(model.Formula())
//
// The search grows the model one variable at a time, selecting at each step
// the candidate with the highest adjusted R², and stops when no candidate
// improves on the current model. It is a hill-climb without backtracking and
// is not guaranteed to find the globally best variable subset.
package stepgo
