/*
SPDX-License-Identifier: Apache-2.0

Copyright 2025 The Strata Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package inplacevolumes

import (
	"errors"
	"fmt"

	"github.com/google/strata/core/tables"
)

// ErrMultipleEnsembles is returned when a table with several ensembles is
// grouped without ENSEMBLE as a grouping dimension, which would silently
// mix ensembles in one trace.
var ErrMultipleEnsembles = errors.New("only one ensemble is allowed when groupBy/subgroupBy are not ENSEMBLE")

// CheckEnsembleGrouping verifies that table can be grouped by groupBy and
// subgroupBy. Either one must be ENSEMBLE unless the table holds at most
// one ensemble.
func CheckEnsembleGrouping(table *tables.DataTable, groupBy, subgroupBy string) error {
	if groupBy == ColumnEnsemble || subgroupBy == ColumnEnsemble {
		return nil
	}
	collection, err := table.SplitByColumn(ColumnEnsemble)
	if err != nil {
		return err
	}
	if collection.Len() > 1 {
		return fmt.Errorf("%w: table holds %d ensembles", ErrMultipleEnsembles, collection.Len())
	}
	return nil
}
