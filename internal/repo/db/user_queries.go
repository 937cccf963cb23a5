package db

const userGetByIDQ = `
SELECT
	u.id,
	u.username,
	u.email,
	u.full_name,
	u.password,
	u.avatar,
	u.cover_image,
	u.refresh_token,
	u.created_at,
	u.updated_at
FROM users u
WHERE u.id = $1
`

const userGetByLoginQ = `
SELECT
	u.id,
	u.username,
	u.email,
	u.full_name,
	u.password,
	u.avatar,
	u.cover_image,
	u.refresh_token,
	u.created_at,
	u.updated_at
FROM users u
WHERE u.email = $1 OR u.username = $2
`

const userCreateQ = `
INSERT INTO users (username, email, full_name, password, avatar, cover_image)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, username, email, full_name, avatar, cover_image, created_at, updated_at
`

const userSetRefreshTokenQ = `
UPDATE users
SET refresh_token = $1,
    updated_at = now()
WHERE id = $2
`

const userGetRefreshTokenQ = `
SELECT u.refresh_token
FROM users u
WHERE u.id = $1
`

const userClearRefreshTokenQ = `
UPDATE users
SET refresh_token = NULL,
    updated_at = now()
WHERE id = $1
`

const userUpdatePasswordQ = `
UPDATE users
SET password = $1,
    updated_at = now()
WHERE id = $2
`

const userUpdateAvatarQ = `
UPDATE users
SET avatar = $1,
    updated_at = now()
WHERE id = $2
`

const userUpdateCoverQ = `
UPDATE users
SET cover_image = $1,
    updated_at = now()
WHERE id = $2
`
