package domain

// Point is a single landmark produced by the perception module. X and Y are
// normalized to [0,1] relative to frame width/height, Z is a relative depth.
type Point struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Visibility float64 `json:"visibility,omitempty"`
}

// LandmarkFrame holds the landmark sets captured at one instant. Any of the
// three sets may be absent (no person / hands / face detected).
//
// Face landmarks are keyed by their canonical mesh index because producers
// send only the small subset the engine consumes.
type LandmarkFrame struct {
	Pose  []Point       `json:"pose,omitempty"`
	Hands [][]Point     `json:"hands,omitempty"`
	Face  map[int]Point `json:"face,omitempty"`

	// Capture resolution, used for on-screen eye-contact distances.
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`
}

// Pose landmark indices (33-point pose topology).
const (
	PoseNose          = 0
	PoseLeftShoulder  = 11
	PoseRightShoulder = 12
	PoseLeftHip       = 23
	PoseRightHip      = 24

	PoseLandmarkCount = 33
)

// Hand landmark indices (21-point hand topology).
const (
	HandWrist     = 0
	HandThumbTip  = 4
	HandIndexTip  = 8
	HandMiddleTip = 12

	HandLandmarkCount = 21
)

// Face mesh indices consumed by the engine.
const (
	FaceNoseTip       = 1
	FaceRightEyeOuter = 33
	FaceRightEyeInner = 133
)

// Six-point eye contours used for the eye aspect ratio, ordered
// p1..p6 (p1/p4 horizontal corners, p2/p6 and p3/p5 vertical pairs).
var (
	LeftEyeEARIndices  = [6]int{362, 385, 387, 263, 373, 380}
	RightEyeEARIndices = [6]int{33, 160, 158, 133, 153, 144}
)
