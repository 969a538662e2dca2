package api

import "context"

// Chat sends one question to the concierge assistant, which answers from
// the metadata of the caller's vault (filenames, statuses, expiry dates;
// never the file contents). The reply is a single plain-text message.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	in := struct {
		Message string `json:"message"`
	}{Message: message}

	var out struct {
		Response string `json:"response"`
	}
	if err := c.postJSON(ctx, "/ai/chat", in, &out); err != nil {
		return "", err
	}
	return out.Response, nil
}
