package sqlinline

const QInsertSchedule = `--sql 1c2d3e4f-5a6b-4c8d-fbea-1a2b3c4d5e57
insert into schedules (id, user_id, content_id, platform, scheduled_time, metadata, created_at)
values (gen_random_uuid(), $1::uuid, $2::text, $3::text, $4::timestamptz, coalesce($5::jsonb, '{}'::jsonb), now())
returning id;
`

const QListSchedules = `--sql 2d3e4f5a-6b7c-4d9e-acfb-2b3c4d5e6f59
select id, content_id, platform, scheduled_time, metadata, created_at
from schedules
where user_id = $1::uuid
order by scheduled_time asc;
`
