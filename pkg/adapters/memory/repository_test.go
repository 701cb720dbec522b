package memory_test

import (
	"testing"

	"github.com/partstack/bomtree/pkg/adapters/memory"
	"github.com/partstack/bomtree/pkg/ports"
)

func TestMemoryRepository_Contract(t *testing.T) {
	parts, edges := ports.ContractFixture()
	repo := memory.Seed(parts, edges)
	ports.RunPartRepositoryContract(t, repo)
}
