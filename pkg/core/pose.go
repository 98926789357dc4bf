// pkg/core/pose.go
package core

// Joint names emitted by the pose estimation stage. Coordinates are
// video pixel space with the origin at the top-left corner.
const (
	JointNose          = "nose"
	JointLeftShoulder  = "left_shoulder"
	JointRightShoulder = "right_shoulder"
	JointLeftElbow     = "left_elbow"
	JointRightElbow    = "right_elbow"
	JointLeftWrist     = "left_wrist"
	JointRightWrist    = "right_wrist"
	JointLeftHip       = "left_hip"
	JointRightHip      = "right_hip"
	JointLeftKnee      = "left_knee"
	JointRightKnee     = "right_knee"
)

// Keypoint is one skeletal landmark in video pixel space.
type Keypoint struct {
	X          float64
	Y          float64
	Z          float64
	Visibility float64 // 0..1 detection confidence
}

// PoseFrame holds the skeletal keypoints and derived joint angles for a
// single video frame. Frames are sparse: not every frame has a pose.
type PoseFrame struct {
	Frame     int
	Keypoints map[string]Keypoint
	Angles    map[string]float64 // derived, degrees, e.g. "elbow"
}

// Joint returns the named keypoint if present and sufficiently visible.
func (p PoseFrame) Joint(name string) (Keypoint, bool) {
	kp, ok := p.Keypoints[name]
	if !ok || kp.Visibility < 0.3 {
		return Keypoint{}, false
	}
	return kp, true
}
