package redis

import (
	"context"
	"fmt"
	"time"
)

const (
	// Префиксы для ключей Redis
	blacklistPrefix    = "crm:jwt:blacklist:"
	refreshTokenPrefix = "crm:refresh:token:"
	sessionPrefix      = "crm:user:session:"
)

// AddToBlacklist добавляет JWT токен в черный список до истечения его срока
func (c *Client) AddToBlacklist(ctx context.Context, token string, expiresIn time.Duration) error {
	return c.Set(ctx, blacklistPrefix+token, "blacklisted", expiresIn)
}

// IsInBlacklist проверяет, отозван ли токен
func (c *Client) IsInBlacklist(ctx context.Context, token string) (bool, error) {
	exists, err := c.Exists(ctx, blacklistPrefix+token)
	if err != nil {
		return false, fmt.Errorf("failed to check blacklist: %v", err)
	}
	return exists, nil
}

// SaveRefreshToken сохраняет refresh token пользователя
func (c *Client) SaveRefreshToken(ctx context.Context, userID uint, refreshToken string, expiresIn time.Duration) error {
	return c.Set(ctx, refreshTokenPrefix+fmt.Sprintf("%d", userID), refreshToken, expiresIn)
}

// GetRefreshToken получает refresh token пользователя
func (c *Client) GetRefreshToken(ctx context.Context, userID uint) (string, error) {
	return c.Get(ctx, refreshTokenPrefix+fmt.Sprintf("%d", userID))
}

// DeleteRefreshToken удаляет refresh token пользователя
func (c *Client) DeleteRefreshToken(ctx context.Context, userID uint) error {
	return c.Delete(ctx, refreshTokenPrefix+fmt.Sprintf("%d", userID))
}

// SaveUserSession сохраняет данные сессии пользователя в хэш-таблице
func (c *Client) SaveUserSession(ctx context.Context, userID uint, sessionData map[string]interface{}, expiresIn time.Duration) error {
	key := sessionPrefix + fmt.Sprintf("%d", userID)

	for field, value := range sessionData {
		if err := c.client.HSet(ctx, key, field, value).Err(); err != nil {
			return err
		}
	}

	return c.Expire(ctx, key, expiresIn)
}

// GetUserSession получает данные сессии пользователя
func (c *Client) GetUserSession(ctx context.Context, userID uint) (map[string]string, error) {
	return c.client.HGetAll(ctx, sessionPrefix+fmt.Sprintf("%d", userID)).Result()
}

// DeleteUserSession удаляет сессию пользователя
func (c *Client) DeleteUserSession(ctx context.Context, userID uint) error {
	return c.Delete(ctx, sessionPrefix+fmt.Sprintf("%d", userID))
}
