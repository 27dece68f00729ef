package api

import (
	"context"

	"github.com/anitrack-cli/anitrack/constant"
)

// Profile fetches the current user's profile.
func (c *Client) Profile(ctx context.Context) (Profile, error) {
	var profile Profile
	if err := c.get(ctx, constant.RouteProfile, &profile); err != nil {
		return Profile{}, err
	}
	return profile, nil
}

// UpdateProfile persists gender and birthday.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) error {
	return c.post(ctx, constant.RouteUpdateProfile, update, nil)
}
