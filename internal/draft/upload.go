package draft

// UploadPhase is the image sub-flow state for one edit session.
//
// Transitions are monotonic except Failed, which requires the user to
// re-pick before another attempt:
//
//	Idle -> Picked -> Uploading -> Uploaded
//	                           \-> Failed -> (re-pick) -> Picked
//
// A denied pick leaves the phase at Idle.
type UploadPhase int

const (
	// UploadIdle means no new image has been picked this session.
	UploadIdle UploadPhase = iota
	// UploadPicked means a local image is staged and not yet uploaded.
	UploadPicked
	// UploadUploading means the upload request is in flight.
	UploadUploading
	// UploadUploaded means the image has a remote URL.
	UploadUploaded
	// UploadFailed means the upload failed and the save was aborted.
	UploadFailed
)

// String returns a short label for the phase.
func (p UploadPhase) String() string {
	switch p {
	case UploadIdle:
		return "idle"
	case UploadPicked:
		return "picked"
	case UploadUploading:
		return "uploading"
	case UploadUploaded:
		return "uploaded"
	case UploadFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// UploadState is a snapshot of the image sub-flow. The staged payload
// lives inside this one state slot rather than in a parallel variable,
// so the phase and the data it refers to can never drift apart.
type UploadState struct {
	Phase     UploadPhase
	LocalRef  string // picked file reference, for preview
	Payload   string // staged data-URI payload, set while Picked
	RemoteURL string // set once Uploaded
	Reason    string // set while Failed
}

func (u *UploadState) pick(localRef, payload string) {
	*u = UploadState{Phase: UploadPicked, LocalRef: localRef, Payload: payload}
}

func (u *UploadState) beginUpload() {
	u.Phase = UploadUploading
}

func (u *UploadState) succeed(url string) {
	*u = UploadState{Phase: UploadUploaded, RemoteURL: url}
}

func (u *UploadState) fail(reason string) {
	u.Phase = UploadFailed
	u.Reason = reason
}
