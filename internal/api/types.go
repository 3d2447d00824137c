package api

// Endpoint paths, relative to the configured base URL
const (
	ChatPath         = "api/chat/"
	ImagePath        = "api/generate-image/"
	TextToSpeechPath = "api/text-to-speech/"
	AuthPath         = "api/auth/"
)

// Auth actions understood by the auth endpoint
const (
	ActionSignIn = "signin"
	ActionSignUp = "signup"
	ActionVerify = "verify"
)

// ChatRequest is the body of a chat completion call
type ChatRequest struct {
	Message  string `json:"message"`
	CodeMode bool   `json:"code_mode"`
}

// ChatResponse carries the assistant's reply
type ChatResponse struct {
	BotResponse string `json:"bot_response"`
}

// ImageRequest is the body of an image generation call
type ImageRequest struct {
	Prompt string `json:"prompt"`
}

// ImageResponse names the generated image (a URL or a path on the backend)
type ImageResponse struct {
	FileName string `json:"file_name"`
}

// SpeechRequest is the body of a text-to-speech call
type SpeechRequest struct {
	Text string `json:"text"`
	Lang string `json:"lang"`
}

// SpeechResponse names the synthesized audio file
type SpeechResponse struct {
	AudioURL string `json:"audio_url"`
}

// AuthRequest is the body of every auth call; Action selects the operation
type AuthRequest struct {
	Action   string `json:"action"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
	OTP      string `json:"otp,omitempty"`
}

// AuthResponse holds whatever the auth endpoint returned on success.
// Older backends nest the username under "user".
type AuthResponse struct {
	Username string `json:"username"`
	Token    string `json:"token"`
	Message  string `json:"message"`
	User     struct {
		Username string `json:"username"`
	} `json:"user"`
}

// errorBody is the structured shape of a rejection, when there is one
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
