// Package sqlite implements the Reader and Writer store interfaces over a
// SQLite database holding the survey schema.
package sqlite

// DDL for the survey tables. Only keys, mission-ownership references and a
// few illustrative payload columns are modeled; the export core treats
// payload columns opaquely. Lookup references (bottomtype_id and friends)
// are plain columns here because their dictionaries are not mission-owned.
const (
	createMissions = `CREATE TABLE IF NOT EXISTS missions (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT,
    started_at TEXT,
    created_at TEXT
);`

	createAreas = `CREATE TABLE IF NOT EXISTS areas (
    id TEXT PRIMARY KEY,
    missions_id TEXT,
    name TEXT,
    created_at TEXT,
    FOREIGN KEY (missions_id) REFERENCES missions(id)
);`

	createBottomIdentification = `CREATE TABLE IF NOT EXISTS bottomidentification (
    id TEXT PRIMARY KEY,
    missions_id TEXT,
    bottomtype_id TEXT,
    bottomclutter_id TEXT,
    created_at TEXT,
    FOREIGN KEY (missions_id) REFERENCES missions(id)
);`

	createEnvironmentalData = `CREATE TABLE IF NOT EXISTS environmentaldata (
    id TEXT PRIMARY KEY,
    missions_id TEXT,
    temperature REAL,
    salinity REAL,
    depth REAL,
    measured_at TEXT,
    FOREIGN KEY (missions_id) REFERENCES missions(id)
);`

	createNavigationMark = `CREATE TABLE IF NOT EXISTS navigationmark (
    id TEXT PRIMARY KEY,
    missions_id TEXT,
    marktype_id TEXT,
    latitude REAL,
    longitude REAL,
    FOREIGN KEY (missions_id) REFERENCES missions(id)
);`

	createOperatorNotes = `CREATE TABLE IF NOT EXISTS operatornotes (
    id TEXT PRIMARY KEY,
    missions_id TEXT,
    note TEXT,
    created_at TEXT,
    FOREIGN KEY (missions_id) REFERENCES missions(id)
);`

	createSpecialPoint = `CREATE TABLE IF NOT EXISTS specialpoint (
    id TEXT PRIMARY KEY,
    missions_id TEXT,
    name TEXT,
    latitude REAL,
    longitude REAL,
    FOREIGN KEY (missions_id) REFERENCES missions(id)
);`

	createTracks = `CREATE TABLE IF NOT EXISTS tracks (
    id TEXT PRIMARY KEY,
    missions_id TEXT,
    areas_id TEXT,
    name TEXT,
    created_at TEXT,
    FOREIGN KEY (missions_id) REFERENCES missions(id),
    FOREIGN KEY (areas_id) REFERENCES areas(id)
);`

	createTasks = `CREATE TABLE IF NOT EXISTS tasks (
    id TEXT PRIMARY KEY,
    missions_id TEXT,
    tracks_id TEXT,
    specialpoint_id TEXT,
    name TEXT,
    state TEXT,
    FOREIGN KEY (missions_id) REFERENCES missions(id),
    FOREIGN KEY (tracks_id) REFERENCES tracks(id),
    FOREIGN KEY (specialpoint_id) REFERENCES specialpoint(id)
);`

	createAreaCells = `CREATE TABLE IF NOT EXISTS areacells (
    id TEXT PRIMARY KEY,
    areas_id TEXT,
    cell_index INTEGER,
    FOREIGN KEY (areas_id) REFERENCES areas(id)
);`

	createAreaPoints = `CREATE TABLE IF NOT EXISTS areapoints (
    id TEXT PRIMARY KEY,
    areas_id TEXT,
    ordinal INTEGER,
    latitude REAL,
    longitude REAL,
    FOREIGN KEY (areas_id) REFERENCES areas(id)
);`

	createPaths = `CREATE TABLE IF NOT EXISTS paths (
    id TEXT PRIMARY KEY,
    tracks_id TEXT,
    pathgenerator_id TEXT,
    colors_id TEXT,
    FOREIGN KEY (tracks_id) REFERENCES tracks(id)
);`

	createQRoutes = `CREATE TABLE IF NOT EXISTS qroutes (
    id TEXT PRIMARY KEY,
    tracks_id TEXT,
    qroutegenerator_id TEXT,
    FOREIGN KEY (tracks_id) REFERENCES tracks(id)
);`

	createTrackPoints = `CREATE TABLE IF NOT EXISTS trackpoints (
    id TEXT PRIMARY KEY,
    tracks_id TEXT,
    navigationmode_id TEXT,
    ordinal INTEGER,
    latitude REAL,
    longitude REAL,
    FOREIGN KEY (tracks_id) REFERENCES tracks(id)
);`

	createTaskExecutions = `CREATE TABLE IF NOT EXISTS taskexecutions (
    id TEXT PRIMARY KEY,
    tasks_id TEXT,
    started_at TEXT,
    finished_at TEXT,
    FOREIGN KEY (tasks_id) REFERENCES tasks(id)
);`

	createUnderwaterObject = `CREATE TABLE IF NOT EXISTS underwaterobject (
    id TEXT PRIMARY KEY,
    missions_id TEXT,
    taskexecutions_id TEXT,
    contacttype_id TEXT,
    latitude REAL,
    longitude REAL,
    detected_at TEXT,
    FOREIGN KEY (missions_id) REFERENCES missions(id),
    FOREIGN KEY (taskexecutions_id) REFERENCES taskexecutions(id)
);`
)

// createStatements lists the DDL in dependency order.
var createStatements = []string{
	createMissions,
	createAreas,
	createBottomIdentification,
	createEnvironmentalData,
	createNavigationMark,
	createOperatorNotes,
	createSpecialPoint,
	createTracks,
	createTasks,
	createAreaCells,
	createAreaPoints,
	createPaths,
	createQRoutes,
	createTrackPoints,
	createTaskExecutions,
	createUnderwaterObject,
}
