package types

// Entity table names of the survey schema. The declaration order here is the
// canonical emit order: parents strictly before children.
const (
	EntityMissions             = "missions"
	EntityAreas                = "areas"
	EntityBottomIdentification = "bottomidentification"
	EntityEnvironmentalData    = "environmentaldata"
	EntityNavigationMark       = "navigationmark"
	EntityOperatorNotes        = "operatornotes"
	EntitySpecialPoint         = "specialpoint"
	EntityTracks               = "tracks"
	EntityTasks                = "tasks"
	EntityAreaCells            = "areacells"
	EntityAreaPoints           = "areapoints"
	EntityPaths                = "paths"
	EntityQRoutes              = "qroutes"
	EntityTrackPoints          = "trackpoints"
	EntityTaskExecutions       = "taskexecutions"
	EntityUnderwaterObject     = "underwaterobject"
)
