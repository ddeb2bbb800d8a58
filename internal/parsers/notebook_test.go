package parsers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethanolivertroy/autoreqs/internal/parsers"
)

func TestNotebookParser_CodeCellsOnly(t *testing.T) {
	t.Parallel()

	nb := `{
  "cells": [
    {"cell_type": "code", "source": ["import torch\n"]},
    {"cell_type": "markdown", "source": ["import pandas\n"]}
  ],
  "nbformat": 4
}`
	names, err := (&parsers.NotebookParser{}).Parse("nb.ipynb", []byte(nb))
	require.NoError(t, err)
	assert.Equal(t, []string{"torch"}, names)
}

func TestNotebookParser_AggregatesAcrossCells(t *testing.T) {
	t.Parallel()

	nb := `{"cells": [
  {"cell_type": "code", "source": ["import numpy as np\n", "from sklearn.linear_model import Ridge"]},
  {"cell_type": "code", "source": "import numpy\nimport matplotlib.pyplot as plt"},
  {"cell_type": "raw", "source": ["import ignored"]}
]}`
	names, err := (&parsers.NotebookParser{}).Parse("nb.ipynb", []byte(nb))
	require.NoError(t, err)
	assert.Equal(t, []string{"matplotlib", "numpy", "sklearn"}, names)
}

func TestNotebookParser_Empty(t *testing.T) {
	t.Parallel()

	for _, content := range []string{"", "  \n\t"} {
		names, err := (&parsers.NotebookParser{}).Parse("empty.ipynb", []byte(content))
		require.ErrorIs(t, err, parsers.ErrEmptyNotebook)
		assert.Empty(t, names)
	}
}

func TestNotebookParser_InvalidJSON(t *testing.T) {
	t.Parallel()

	names, err := (&parsers.NotebookParser{}).Parse("bad.ipynb", []byte("{not json"))
	require.ErrorIs(t, err, parsers.ErrInvalidNotebook)
	assert.Empty(t, names)
}

func TestNotebookParser_NoCells(t *testing.T) {
	t.Parallel()

	names, err := (&parsers.NotebookParser{}).Parse("nb.ipynb", []byte(`{"metadata": {}}`))
	require.NoError(t, err)
	assert.Empty(t, names)
}
