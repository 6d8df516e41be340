package services

import (
	"context"
	"testing"

	"kitapkulubu.link/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupNoRangePerType(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	svc := NewGroupService()

	cases := []struct {
		groupType models.GroupType
		groupNo   int
		ok        bool
	}{
		{models.GroupTypeClub, 1, true},
		{models.GroupTypeClub, 999, true},
		{models.GroupTypeClub, 1000, false},
		{models.GroupTypeSelect, 1500, true},
		{models.GroupTypeSelect, 2000, false},
		{models.GroupTypeLinked, 3000, true},
		{models.GroupTypeLinked, 2999, false},
	}
	for _, tc := range cases {
		group := &models.Group{GroupNo: tc.groupNo, Type: tc.groupType, Tag: "test"}
		err := svc.CreateGroup(ctx, group)
		if tc.ok {
			require.NoError(t, err, "tür %d numara %d", tc.groupType, tc.groupNo)
			require.NoError(t, svc.DeleteGroup(ctx, group.ID))
		} else {
			assert.ErrorIs(t, err, ErrGroupNoOutOfRange, "tür %d numara %d", tc.groupType, tc.groupNo)
		}
	}
}

func TestGroupNoMustBeUnique(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	svc := NewGroupService()

	require.NoError(t, svc.CreateGroup(ctx, &models.Group{GroupNo: 7, Type: models.GroupTypeClub, Tag: "Salı Grubu"}))
	err := svc.CreateGroup(ctx, &models.Group{GroupNo: 7, Type: models.GroupTypeClub, Tag: "Başka Grup"})
	assert.ErrorIs(t, err, ErrGroupNoTaken)
}

func TestGroupMembershipList(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewGroupService()

	group := &models.Group{GroupNo: 3, Type: models.GroupTypeClub, Tag: "Çarşamba Grubu"}
	require.NoError(t, svc.CreateGroup(ctx, group))

	inGroup := seedMember(t, db, "Ayşe", "ayse@example.com")
	outGroup := seedMember(t, db, "Mehmet", "mehmet@example.com")
	require.NoError(t, svc.AddMember(ctx, group.ID, inGroup.ID))

	rows, err := svc.GetMembershipList(ctx, group.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byID := map[uint]bool{}
	for i := range rows {
		byID[rows[i].Member.ID] = rows[i].InGroup()
	}
	assert.True(t, byID[inGroup.ID])
	assert.False(t, byID[outGroup.ID])

	// Çıkarma tersine çevirir.
	require.NoError(t, svc.RemoveMember(ctx, group.ID, inGroup.ID))
	rows, err = svc.GetMembershipList(ctx, group.ID)
	require.NoError(t, err)
	for i := range rows {
		assert.False(t, rows[i].InGroup())
	}
}
