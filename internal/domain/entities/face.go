package entities

// BoundingBox is [x1, y1, x2, y2] in pixel coordinates of the submitted image
type BoundingBox [4]float64

// DetectedFace is one face reported by the feature extractor
type DetectedFace struct {
	Embedding  Embedding   `json:"-"`
	BBox       BoundingBox `json:"bbox"`
	Confidence float64     `json:"confidence"`
}

// FaceInfoResult describes every face found in an image, without matching
type FaceInfoResult struct {
	FaceCount int            `json:"faceCount"`
	Faces     []DetectedFace `json:"faces"`
}

// FaceServiceStatus reports whether recognition can run right now
type FaceServiceStatus struct {
	Available        bool    `json:"available"`
	ServiceStatus    string  `json:"serviceStatus"`
	Threshold        float64 `json:"threshold"`
	ThresholdVersion int64   `json:"thresholdVersion"`
	GallerySize      int64   `json:"gallerySize"`
}
