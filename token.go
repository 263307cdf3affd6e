package testhub

// Token is the credential issued by the API server at login. The client
// treats AccessToken as opaque.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
