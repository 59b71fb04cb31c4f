package services

import (
	"testing"

	"github.com/pferate/puppy-website/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createCategoryChain(t *testing.T, s *CatalogService, names ...string) []*models.Category {
	t.Helper()

	var chain []*models.Category
	var parent *uint64
	for _, name := range names {
		c, err := s.CreateCategory(CreateCategoryInput{Name: name, ParentID: parent})
		require.NoError(t, err)
		chain = append(chain, c)
		id := c.ID
		parent = &id
	}
	return chain
}

func TestCatalogService_Lineage(t *testing.T) {
	env := setupServiceTestEnv(t)
	chain := createCategoryChain(t, env.catalog, "A", "B", "C")

	lineage, err := env.catalog.Lineage(chain[2].ID)
	require.NoError(t, err)
	assert.Equal(t, "A > B > C", lineage)

	root, err := env.catalog.Lineage(chain[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "A", root)

	names, err := env.catalog.LineageNames(chain[1].ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, names)
}

func TestCatalogService_LineageDetectsStoredCycle(t *testing.T) {
	env := setupServiceTestEnv(t)
	chain := createCategoryChain(t, env.catalog, "A", "B")

	require.NoError(t, env.db.Model(&models.Category{}).
		Where("id = ?", chain[0].ID).
		Update("parent_id", chain[1].ID).Error)

	_, err := env.catalog.Lineage(chain[1].ID)
	assert.ErrorIs(t, err, ErrCategoryCycle)
}

func TestCatalogService_SetParentRejectsCycle(t *testing.T) {
	env := setupServiceTestEnv(t)
	chain := createCategoryChain(t, env.catalog, "A", "B", "C")

	_, err := env.catalog.SetParent(chain[0].ID, &chain[2].ID)
	assert.ErrorIs(t, err, ErrCategoryCycle)

	_, err = env.catalog.SetParent(chain[1].ID, &chain[1].ID)
	assert.ErrorIs(t, err, ErrCategoryCycle)

	moved, err := env.catalog.SetParent(chain[2].ID, nil)
	require.NoError(t, err)
	assert.Nil(t, moved.ParentID)

	lineage, err := env.catalog.Lineage(chain[2].ID)
	require.NoError(t, err)
	assert.Equal(t, "C", lineage)
}

func TestCatalogService_CreateCategoryValidation(t *testing.T) {
	env := setupServiceTestEnv(t)

	_, err := env.catalog.CreateCategory(CreateCategoryInput{Name: " "})
	assert.ErrorIs(t, err, ErrInvalidCategoryName)

	missing := uint64(42)
	_, err = env.catalog.CreateCategory(CreateCategoryInput{Name: "Orphan", ParentID: &missing})
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCatalogService_Skills(t *testing.T) {
	env := setupServiceTestEnv(t)
	chain := createCategoryChain(t, env.catalog, "Engineering", "Software")
	user := createTestUser(t, env.db, "john@example.com")

	skill, err := env.catalog.CreateSkill(CreateSkillInput{Name: "Go", CategoryIDs: []uint64{chain[1].ID}})
	require.NoError(t, err)
	require.Len(t, skill.Categories, 1)
	assert.Equal(t, "Software", skill.Categories[0].Name)

	require.NoError(t, env.catalog.AddSkillToCategory(skill.ID, chain[1].ID))
	require.NoError(t, env.catalog.AddSkillToCategory(skill.ID, chain[0].ID))
	skill, err = env.catalog.GetSkill(skill.ID)
	require.NoError(t, err)
	assert.Len(t, skill.Categories, 2)

	require.NoError(t, env.catalog.AddUserSkill(user.ID, skill.ID))
	require.NoError(t, env.catalog.AddUserSkill(user.ID, skill.ID))
	skills, err := env.catalog.UserSkills(user.ID)
	require.NoError(t, err)
	require.Len(t, skills, 1)
	assert.Equal(t, "Go", skills[0].Name)

	assert.ErrorIs(t, env.catalog.AddUserSkill(999, skill.ID), ErrUserNotFound)
	assert.ErrorIs(t, env.catalog.AddUserSkill(user.ID, 999), ErrSkillNotFound)

	_, err = env.catalog.CreateSkill(CreateSkillInput{Name: ""})
	assert.ErrorIs(t, err, ErrInvalidSkillName)
}
