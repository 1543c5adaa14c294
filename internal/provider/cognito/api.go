package cognito

const (
	flowUserAuth     = "USER_AUTH"
	flowRefreshToken = "REFRESH_TOKEN_AUTH"

	challengeEmailOTP = "EMAIL_OTP"
	challengeSelect   = "SELECT_CHALLENGE"
)

type initiateAuthInput struct {
	AuthFlow       string            `json:"AuthFlow"`
	ClientID       string            `json:"ClientId"`
	AuthParameters map[string]string `json:"AuthParameters"`
	Session        string            `json:"Session,omitempty"`
}

type respondToAuthChallengeInput struct {
	ChallengeName      string            `json:"ChallengeName"`
	ClientID           string            `json:"ClientId"`
	ChallengeResponses map[string]string `json:"ChallengeResponses"`
	Session            string            `json:"Session,omitempty"`
}

type authOutput struct {
	ChallengeName        string                `json:"ChallengeName,omitempty"`
	ChallengeParameters  map[string]string     `json:"ChallengeParameters,omitempty"`
	Session              string                `json:"Session,omitempty"`
	AvailableChallenges  []string              `json:"AvailableChallenges,omitempty"`
	AuthenticationResult *authenticationResult `json:"AuthenticationResult,omitempty"`
}

type authenticationResult struct {
	AccessToken  string `json:"AccessToken"`
	IDToken      string `json:"IdToken"`
	RefreshToken string `json:"RefreshToken,omitempty"`
	TokenType    string `json:"TokenType"`
	ExpiresIn    int64  `json:"ExpiresIn"`
}

type attributeType struct {
	Name  string `json:"Name"`
	Value string `json:"Value"`
}

type signUpInput struct {
	ClientID       string          `json:"ClientId"`
	Username       string          `json:"Username"`
	UserAttributes []attributeType `json:"UserAttributes,omitempty"`
}

type codeDeliveryDetails struct {
	Destination    string `json:"Destination"`
	DeliveryMedium string `json:"DeliveryMedium"`
	AttributeName  string `json:"AttributeName"`
}

type signUpOutput struct {
	UserConfirmed       bool                 `json:"UserConfirmed"`
	UserSub             string               `json:"UserSub"`
	Session             string               `json:"Session,omitempty"`
	CodeDeliveryDetails *codeDeliveryDetails `json:"CodeDeliveryDetails,omitempty"`
}

type confirmSignUpInput struct {
	ClientID         string `json:"ClientId"`
	Username         string `json:"Username"`
	ConfirmationCode string `json:"ConfirmationCode"`
	Session          string `json:"Session,omitempty"`
}

type confirmSignUpOutput struct {
	Session string `json:"Session,omitempty"`
}

type resendConfirmationCodeInput struct {
	ClientID string `json:"ClientId"`
	Username string `json:"Username"`
}

type globalSignOutInput struct {
	AccessToken string `json:"AccessToken"`
}
