package utils

import (
    "testing"
    "time"

    "github.com/golang-jwt/jwt/v5"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestNewAccessTokenRoundTrip(t *testing.T) {
    const secret = "test-secret"

    at, err := NewAccessToken(secret, 42, "TEACHER", "Prof. Sarah Smith", 15)
    require.NoError(t, err)
    assert.WithinDuration(t, time.Now().UTC().Add(15*time.Minute), at.Exp, 5*time.Second)

    tok, err := jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
        return []byte(secret), nil
    })
    require.NoError(t, err)
    require.True(t, tok.Valid)

    claims := tok.Claims.(jwt.MapClaims)
    assert.Equal(t, float64(42), claims["sub"])
    assert.Equal(t, "TEACHER", claims["role"])
    assert.Equal(t, "Prof. Sarah Smith", claims["name"])
}

func TestNewAccessTokenRejectsWrongSecret(t *testing.T) {
    at, err := NewAccessToken("right-secret", 1, "STUDENT", "John Doe", 15)
    require.NoError(t, err)

    _, err = jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
        return []byte("wrong-secret"), nil
    })
    assert.Error(t, err)
}

func TestNewRefreshToken(t *testing.T) {
    rt, err := NewRefreshToken(30)
    require.NoError(t, err)
    assert.Len(t, rt.Raw, 96)
    assert.WithinDuration(t, time.Now().UTC().Add(30*24*time.Hour), rt.Exp, 5*time.Second)

    other, err := NewRefreshToken(30)
    require.NoError(t, err)
    assert.NotEqual(t, rt.Raw, other.Raw)

    // Hashing is deterministic and never echoes the raw token.
    h := HashRefreshRaw(rt.Raw)
    assert.Equal(t, h, HashRefreshRaw(rt.Raw))
    assert.NotEqual(t, rt.Raw, h)
    assert.Len(t, h, 64)
}

func TestPasswordHashing(t *testing.T) {
    hash, err := HashPassword("s3cret", 4)
    require.NoError(t, err)
    assert.True(t, VerifyPassword(hash, "s3cret"))
    assert.False(t, VerifyPassword(hash, "wrong"))
}
