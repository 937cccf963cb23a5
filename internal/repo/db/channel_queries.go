package db

const channelProfileQ = `
SELECT
	u.id,
	u.username,
	u.email,
	u.full_name,
	u.avatar,
	u.cover_image,
	(SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = u.id)    AS subscribers_count,
	(SELECT COUNT(*) FROM subscriptions s WHERE s.subscriber_id = u.id) AS channels_subscribed_count,
	EXISTS(
		SELECT 1 FROM subscriptions s
		WHERE s.channel_id = u.id AND s.subscriber_id = $2
	) AS is_subscribed
FROM users u
WHERE u.username = $1
`

const watchHistoryQ = `
SELECT
	v.id,
	v.video_file,
	v.thumbnail,
	v.title,
	v.description,
	v.duration,
	v.views,
	o.id        AS "owner.id",
	o.username  AS "owner.username",
	o.full_name AS "owner.full_name",
	o.avatar    AS "owner.avatar"
FROM watch_history wh
JOIN videos v ON v.id = wh.video_id
JOIN users o  ON o.id = v.owner_id
WHERE wh.user_id = $1
ORDER BY wh.position
`
