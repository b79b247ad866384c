package schema

import "github.com/seabed-systems/missionsnap/pkg/types"

// Mission returns the survey schema graph rooted at the missions table.
//
// Three entity types have fan-in: tracks attach to a mission directly or
// through an area; tasks attach to a mission, a track, or a special point;
// underwater objects attach to a mission or a task execution. Each row uses
// exactly one of the edges, so the per-type resolver must union across them.
//
// Lookup references (bottom types, mark types, colors, generators and the
// like) are deliberately absent: they are shared dictionaries, not owned by
// a mission, and are never part of a snapshot.
func Mission() *Graph {
	g, err := New(
		Entity{Name: types.EntityMissions, KeyField: "id"},
		Entity{Name: types.EntityAreas, KeyField: "id", Edges: []Edge{
			{Parent: types.EntityMissions, RefField: "missions_id"},
		}},
		Entity{Name: types.EntityBottomIdentification, KeyField: "id", Edges: []Edge{
			{Parent: types.EntityMissions, RefField: "missions_id"},
		}},
		Entity{Name: types.EntityEnvironmentalData, KeyField: "id", Edges: []Edge{
			{Parent: types.EntityMissions, RefField: "missions_id"},
		}},
		Entity{Name: types.EntityNavigationMark, KeyField: "id", Edges: []Edge{
			{Parent: types.EntityMissions, RefField: "missions_id"},
		}},
		Entity{Name: types.EntityOperatorNotes, KeyField: "id", Edges: []Edge{
			{Parent: types.EntityMissions, RefField: "missions_id"},
		}},
		Entity{Name: types.EntitySpecialPoint, KeyField: "id", Edges: []Edge{
			{Parent: types.EntityMissions, RefField: "missions_id"},
		}},
		Entity{Name: types.EntityTracks, KeyField: "id", Edges: []Edge{
			{Parent: types.EntityMissions, RefField: "missions_id"},
			{Parent: types.EntityAreas, RefField: "areas_id"},
		}},
		Entity{Name: types.EntityTasks, KeyField: "id", Edges: []Edge{
			{Parent: types.EntityMissions, RefField: "missions_id"},
			{Parent: types.EntityTracks, RefField: "tracks_id"},
			{Parent: types.EntitySpecialPoint, RefField: "specialpoint_id"},
		}},
		Entity{Name: types.EntityAreaCells, KeyField: "id", Edges: []Edge{
			{Parent: types.EntityAreas, RefField: "areas_id"},
		}},
		Entity{Name: types.EntityAreaPoints, KeyField: "id", Edges: []Edge{
			{Parent: types.EntityAreas, RefField: "areas_id"},
		}},
		Entity{Name: types.EntityPaths, KeyField: "id", Edges: []Edge{
			{Parent: types.EntityTracks, RefField: "tracks_id"},
		}},
		Entity{Name: types.EntityQRoutes, KeyField: "id", Edges: []Edge{
			{Parent: types.EntityTracks, RefField: "tracks_id"},
		}},
		Entity{Name: types.EntityTrackPoints, KeyField: "id", Edges: []Edge{
			{Parent: types.EntityTracks, RefField: "tracks_id"},
		}},
		Entity{Name: types.EntityTaskExecutions, KeyField: "id", Edges: []Edge{
			{Parent: types.EntityTasks, RefField: "tasks_id"},
		}},
		Entity{Name: types.EntityUnderwaterObject, KeyField: "id", Edges: []Edge{
			{Parent: types.EntityMissions, RefField: "missions_id"},
			{Parent: types.EntityTaskExecutions, RefField: "taskexecutions_id"},
		}},
	)
	if err != nil {
		// The declarations above are compile-time constants; a failure here
		// is a programming error.
		panic(err)
	}
	return g
}
