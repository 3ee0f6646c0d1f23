package sqlinline

const QInsertPreset = `--sql 1a2b3c4d-5e6f-4a8b-9c0d-1e2f3a4b5c17
insert into presets (id, user_id, name, audience, formats, created_at)
values ($1::uuid, $2::uuid, $3::text, $4::jsonb, $5::jsonb, now());
`

const QListPresets = `--sql 2b3c4d5e-6f7a-4b9c-8d1e-2f3a4b5c6d19
select id, name, audience, formats, created_at
from presets
where user_id = $1::uuid
order by created_at asc;
`

const QSelectPreset = `--sql 3c4d5e6f-7a8b-4c0d-9e2f-3a4b5c6d7e21
select id, name, audience, formats, created_at
from presets
where id = $1::uuid and user_id = $2::uuid;
`

const QRenamePreset = `--sql 4d5e6f7a-8b9c-4d1e-a03f-4b5c6d7e8f23
update presets
set name = $3::text
where id = $1::uuid and user_id = $2::uuid;
`

const QDeletePreset = `--sql 5e6f7a8b-9c0d-4e2f-b14a-5c6d7e8f9a25
delete from presets
where id = $1::uuid and user_id = $2::uuid;
`
