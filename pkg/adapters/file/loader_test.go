package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partstack/bomtree/pkg/adapters/file"
)

const sampleDataset = `
parts:
  - id: 1
    name: Drive Unit
    ipn: DRV-100
    assembly: true
    revision: A
  - id: 2
    name: Motor
    assembly: true
  - id: 3
    name: Bracket
  - id: 4
    name: Spare Bracket
bom:
  - parent: 1
    sub_part: 2
    quantity: 1
  - parent: 1
    sub_part: 3
    quantity: "2.5"
    reference: M3x8
    note: torque to 1.2 Nm
    substitutes: [4]
`

func TestParse(t *testing.T) {
	repo, err := file.Parse([]byte(sampleDataset))
	require.NoError(t, err)

	ctx := context.Background()

	part, err := repo.GetPart(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Drive Unit", part.Name)
	assert.Equal(t, "DRV-100", part.IPN)
	assert.Equal(t, "A", part.Revision)
	assert.True(t, part.Assembly)

	edges, err := repo.GetBomEdges(ctx, 1)
	require.NoError(t, err)
	require.Len(t, edges, 2)

	// Quantities survive both plain scalars and quoted strings.
	require.NotNil(t, edges[0].Quantity)
	assert.Equal(t, "1", edges[0].Quantity.String())
	require.NotNil(t, edges[1].Quantity)
	assert.Equal(t, "2.5", edges[1].Quantity.String())
	assert.Equal(t, []int{4}, edges[1].Substitutes)
}

func TestParse_AbsentQuantity(t *testing.T) {
	repo, err := file.Parse([]byte(`
parts:
  - id: 1
    name: A
  - id: 2
    name: B
bom:
  - parent: 1
    sub_part: 2
`))
	require.NoError(t, err)

	edges, err := repo.GetBomEdges(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, edges, 1)
	assert.Nil(t, edges[0].Quantity)
}

func TestParse_Invalid(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "unknown parent",
			doc:  "parts:\n  - {id: 1, name: A}\nbom:\n  - {parent: 7, sub_part: 1}\n",
			want: "unknown parent part 7",
		},
		{
			name: "unknown sub-part",
			doc:  "parts:\n  - {id: 1, name: A}\nbom:\n  - {parent: 1, sub_part: 9}\n",
			want: "unknown sub-part 9",
		},
		{
			name: "unknown substitute",
			doc:  "parts:\n  - {id: 1, name: A}\n  - {id: 2, name: B}\nbom:\n  - {parent: 1, sub_part: 2, substitutes: [3]}\n",
			want: "unknown substitute part 3",
		},
		{
			name: "duplicate part id",
			doc:  "parts:\n  - {id: 1, name: A}\n  - {id: 1, name: B}\n",
			want: "duplicate part id 1",
		},
		{
			name: "missing name",
			doc:  "parts:\n  - {id: 1}\n",
			want: "has no name",
		},
		{
			name: "bad quantity",
			doc:  "parts:\n  - {id: 1, name: A}\n  - {id: 2, name: B}\nbom:\n  - {parent: 1, sub_part: 2, quantity: lots}\n",
			want: "invalid quantity",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := file.Parse([]byte(tc.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dataset.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleDataset), 0o644))

	repo, err := file.Load(path)
	require.NoError(t, err)

	assemblies, err := repo.ListAssemblies(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, assemblies, 2)
	// Ordered by name: Drive Unit, Motor.
	assert.Equal(t, []int{1, 2}, []int{assemblies[0].ID, assemblies[1].ID})
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := file.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
