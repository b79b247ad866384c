package clone

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seabed-systems/missionsnap/internal/schema"
	"github.com/seabed-systems/missionsnap/pkg/types"
)

// fakeTarget records inserts and serves FetchIDs for name-collision checks.
type fakeTarget struct {
	inserted map[string][]types.Row // entity -> rows in insert order
	names    []string               // existing mission names in the target
}

func newFakeTarget(existingNames ...string) *fakeTarget {
	return &fakeTarget{
		inserted: make(map[string][]types.Row),
		names:    existingNames,
	}
}

func (f *fakeTarget) InsertRow(_ context.Context, entity string, row types.Row) error {
	f.inserted[entity] = append(f.inserted[entity], row)
	return nil
}

func (f *fakeTarget) FetchIDs(_ context.Context, entity string, p types.Predicate) ([]string, error) {
	if entity != types.EntityMissions || p.Field != "name" {
		return nil, nil
	}
	var ids []string
	for _, name := range f.names {
		for _, want := range p.Values {
			if name == want {
				ids = append(ids, "existing-"+name)
			}
		}
	}
	return ids, nil
}

func (f *fakeTarget) FetchRows(context.Context, string, types.Predicate) ([]types.Row, error) {
	return nil, nil
}

var hexID = regexp.MustCompile(`^[0-9a-f]{32}$`)

func sampleBatches() []types.Batch {
	return []types.Batch{
		{Entity: types.EntityMissions, Rows: []types.Row{
			{"id": "M1", "name": "survey-01", "started_at": "0000-00-00 00:00:00"},
		}},
		{Entity: types.EntityAreas, Rows: []types.Row{
			{"id": "A1", "missions_id": "M1"},
		}},
		{Entity: types.EntityTracks, Rows: []types.Row{
			{"id": "T1", "missions_id": "M1"},
			{"id": "T2", "areas_id": "A1"},
		}},
		{Entity: types.EntityTasks, Rows: []types.Row{
			{"id": "X", "tracks_id": "T1"},
			{"id": "Z", "missions_id": "M1"},
		}},
	}
}

func TestCloneRemapsForeignKeys(t *testing.T) {
	target := newFakeTarget()
	idMap, err := New(schema.Mission(), target).Clone(context.Background(), sampleBatches())
	require.NoError(t, err)

	newMission := idMap[types.EntityMissions]["M1"]
	require.True(t, hexID.MatchString(newMission), "mission id %q is not 32-hex", newMission)

	area := target.inserted[types.EntityAreas][0]
	assert.Equal(t, newMission, area["missions_id"])
	assert.Equal(t, idMap[types.EntityAreas]["A1"], area["id"])

	// Track T2 attaches via the area, T1 via the mission.
	tracks := target.inserted[types.EntityTracks]
	assert.Equal(t, newMission, tracks[0]["missions_id"])
	assert.Equal(t, idMap[types.EntityAreas]["A1"], tracks[1]["areas_id"])

	// Task X follows the track edge, Z the mission edge.
	tasks := target.inserted[types.EntityTasks]
	assert.Equal(t, idMap[types.EntityTracks]["T1"], tasks[0]["tracks_id"])
	assert.Equal(t, newMission, tasks[1]["missions_id"])
}

func TestCloneGeneratesFreshIDs(t *testing.T) {
	target := newFakeTarget()
	idMap, err := New(schema.Mission(), target).Clone(context.Background(), sampleBatches())
	require.NoError(t, err)

	seen := make(map[string]bool)
	for entity, m := range idMap {
		for oldID, newID := range m {
			assert.NotEqual(t, oldID, newID, "%s %s kept its id", entity, oldID)
			assert.True(t, hexID.MatchString(newID))
			assert.False(t, seen[newID], "id %s generated twice", newID)
			seen[newID] = true
		}
	}
}

func TestCloneNullsUnmappedReference(t *testing.T) {
	target := newFakeTarget()
	batches := []types.Batch{
		{Entity: types.EntityMissions, Rows: []types.Row{{"id": "M1", "name": "m"}}},
		{Entity: types.EntityTracks, Rows: []types.Row{
			// areas_id points at an area that is not part of the snapshot.
			{"id": "T1", "areas_id": "A-outside"},
		}},
	}
	_, err := New(schema.Mission(), target).Clone(context.Background(), batches)
	require.NoError(t, err)

	track := target.inserted[types.EntityTracks][0]
	assert.Nil(t, track["areas_id"])
}

func TestCloneNormalizesZeroDates(t *testing.T) {
	target := newFakeTarget()
	_, err := New(schema.Mission(), target).Clone(context.Background(), sampleBatches())
	require.NoError(t, err)

	mission := target.inserted[types.EntityMissions][0]
	assert.Nil(t, mission["started_at"])
}

func TestCloneRenamesMissionOnCollision(t *testing.T) {
	target := newFakeTarget("survey-01")
	_, err := New(schema.Mission(), target).Clone(context.Background(), sampleBatches())
	require.NoError(t, err)

	mission := target.inserted[types.EntityMissions][0]
	assert.Equal(t, "survey-01_copy", mission["name"])
}

func TestCloneDryRunInsertsNothing(t *testing.T) {
	target := newFakeTarget()
	idMap, err := New(schema.Mission(), target, DryRun(true)).Clone(context.Background(), sampleBatches())
	require.NoError(t, err)

	assert.Empty(t, target.inserted)
	// The id map is still fully built so the run can be inspected.
	assert.Len(t, idMap[types.EntityTasks], 2)
}

func TestCloneRowWithoutKeyFails(t *testing.T) {
	target := newFakeTarget()
	batches := []types.Batch{
		{Entity: types.EntityMissions, Rows: []types.Row{{"name": "keyless"}}},
	}
	_, err := New(schema.Mission(), target).Clone(context.Background(), batches)
	require.ErrorIs(t, err, types.ErrMissingKey)
}

func TestCloneDoesNotMutateSourceRows(t *testing.T) {
	target := newFakeTarget()
	batches := sampleBatches()
	_, err := New(schema.Mission(), target).Clone(context.Background(), batches)
	require.NoError(t, err)

	assert.Equal(t, "M1", batches[0].Rows[0]["id"])
	assert.Equal(t, "M1", batches[1].Rows[0]["missions_id"])
}
