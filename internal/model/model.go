package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

////////////////////////
// DATABASE STRUCTURES //
////////////////////////

// DatabaseModels is a list of all the structs exported here which represent tables in the database schema
var DatabaseModels = []interface{}{
	&ProvisionInfo{},
	&Session{},
	&Stroke{},
	&PoseFrame{},
	&TrajectoryPoint{},
	&PointEvent{},
	&ActivityRegion{},
	&VelocitySeries{},
	&Tip{},
}

////////////////////////
// SYSTEM MODELS
////////////////////////

// ProvisionInfo contains group information about the instance
type ProvisionInfo struct {
	gorm.Model
	GroupName        string `json:"groupName" gorm:"size:127"` // primary key
	GroupDescription string `json:"groupDescription" gorm:"size:255"`
	GroupWebsite     string `json:"groupURL" gorm:"size:255"`
}

func (*ProvisionInfo) TableName() string {
	return "provision_infos"
}

////////////////////////
// SESSION MODELS
////////////////////////

// Session is one analyzed coaching video
type Session struct {
	gorm.Model
	Name            string    `json:"name" gorm:"size:255"`
	Sport           string    `json:"sport" gorm:"size:63"`
	Tag             string    `json:"tag" gorm:"size:127"`
	StartTime       time.Time `json:"startTime"`
	AnalyzerVersion string    `json:"analyzerVersion" gorm:"size:63"`
	Duration        float64   `json:"duration"`
	FPS             float64   `json:"fps"`
	TotalFrames     int       `json:"totalFrames"`
	Width           int       `json:"width"`
	Height          int       `json:"height"`
}

// Stroke is one detected swing. Joint metrics are stored as a JSON blob:
// the metric set evolves with the analyzer and is never queried by column.
type Stroke struct {
	gorm.Model
	SessionID  uint           `json:"sessionId" gorm:"index:idx_stroke_session_id"`
	Session    Session        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignkey:SessionID;"`
	StrokeID   uint           `json:"strokeId" gorm:"index:idx_stroke_stroke_id"`
	StartFrame int            `json:"startFrame"`
	EndFrame   int            `json:"endFrame"`
	PeakFrame  int            `json:"peakFrame"`
	Type       string         `json:"type" gorm:"size:31"`
	FormScore  float64        `json:"formScore"`
	Metrics    datatypes.JSON `json:"metrics"`
}

// PoseFrame holds one frame's skeletal keypoints and derived angles as JSON
type PoseFrame struct {
	gorm.Model
	SessionID uint           `json:"sessionId" gorm:"index:idx_pose_session_id"`
	Frame     int            `json:"frame" gorm:"index:idx_pose_frame"`
	Keypoints datatypes.JSON `json:"keypoints"`
	Angles    datatypes.JSON `json:"angles"`
}

// TrajectoryPoint is one detected ball position
type TrajectoryPoint struct {
	gorm.Model
	SessionID uint    `json:"sessionId" gorm:"index:idx_trajectory_session_id"`
	Frame     int     `json:"frame" gorm:"index:idx_trajectory_frame"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
}

// PointEvent is one scoring instant
type PointEvent struct {
	gorm.Model
	SessionID uint    `json:"sessionId" gorm:"index:idx_pointevent_session_id"`
	EventID   uint    `json:"eventId"`
	Frame     int     `json:"frame"`
	Timestamp float64 `json:"timestamp"`
	Reason    string  `json:"reason" gorm:"size:63"`
}

// ActivityRegion is one pre-aggregated activity band
type ActivityRegion struct {
	gorm.Model
	SessionID  uint    `json:"sessionId" gorm:"index:idx_region_session_id"`
	RegionID   uint    `json:"regionId"`
	StartFrame int     `json:"startFrame"`
	EndFrame   int     `json:"endFrame"`
	StartTime  float64 `json:"startTime"`
	EndTime    float64 `json:"endTime"`
	PeakScore  float64 `json:"peakScore"`
	Type       string  `json:"type" gorm:"size:31"`
	Label      string  `json:"label" gorm:"size:127"`
}

// VelocitySeries stores the full swing-velocity sample array as one JSON
// row per session; samples are only ever read back whole.
type VelocitySeries struct {
	gorm.Model
	SessionID uint           `json:"sessionId" gorm:"index:idx_velocity_session_id"`
	Samples   datatypes.JSON `json:"samples"`
}

// Tip is one scheduled coaching annotation
type Tip struct {
	gorm.Model
	SessionID uint     `json:"sessionId" gorm:"index:idx_tip_session_id"`
	TipID     string   `json:"tipId" gorm:"size:63"`
	Timestamp float64  `json:"timestamp"`
	Duration  float64  `json:"duration"`
	Title     string   `json:"title" gorm:"size:127"`
	Message   string   `json:"message" gorm:"size:511"`
	StrokeID  *uint    `json:"strokeId"`
	SeekTime  *float64 `json:"seekTime"`
}
