package parser

// Wire DTOs for the JSON payloads the analysis stages deliver. Field
// names follow the analyzer's camelCase output.

type sessionDTO struct {
	Name     string  `json:"name"`
	Sport    string  `json:"sport"`
	Tag      string  `json:"tag"`
	Duration float64 `json:"duration"`
	FPS      float64 `json:"fps"`
	Frames   int     `json:"totalFrames"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
}

type strokeDTO struct {
	ID         uint       `json:"id"`
	StartFrame int        `json:"startFrame"`
	EndFrame   int        `json:"endFrame"`
	PeakFrame  int        `json:"peakFrame"`
	Type       string     `json:"type"`
	FormScore  float64    `json:"formScore"`
	Metrics    metricsDTO `json:"metrics"`
}

type metricsDTO struct {
	ElbowAngle            float64 `json:"elbowAngle"`
	ElbowRange            float64 `json:"elbowRange"`
	HipRotationRange      float64 `json:"hipRotationRange"`
	ShoulderRotationRange float64 `json:"shoulderRotationRange"`
	KneeAngle             float64 `json:"kneeAngle"`
	SpineLean             float64 `json:"spineLean"`
}

type keypointDTO struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Visibility float64 `json:"visibility"`
}

type poseFrameDTO struct {
	Frame     int                    `json:"frame"`
	Keypoints map[string]keypointDTO `json:"keypoints"`
	Angles    map[string]float64     `json:"angles"`
}

type trajectoryPointDTO struct {
	Frame int     `json:"frame"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

type pointEventDTO struct {
	ID        uint    `json:"id"`
	Frame     int     `json:"frame"`
	Timestamp float64 `json:"timestamp"`
	Reason    string  `json:"reason"`
}

type tipDTO struct {
	ID        string   `json:"id"`
	Timestamp float64  `json:"timestamp"`
	Duration  float64  `json:"duration"`
	Title     string   `json:"title"`
	Message   string   `json:"message"`
	StrokeID  *uint    `json:"strokeId,omitempty"`
	SeekTime  *float64 `json:"seekTime,omitempty"`
}

type regionDTO struct {
	ID         uint    `json:"id"`
	StartFrame int     `json:"startFrame"`
	EndFrame   int     `json:"endFrame"`
	StartTime  float64 `json:"startTime"`
	EndTime    float64 `json:"endTime"`
	PeakScore  float64 `json:"peakScore"`
	Type       string  `json:"type"`
	Label      string  `json:"label"`
}
