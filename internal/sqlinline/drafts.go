package sqlinline

// The draft row is overwritten wholesale on every wizard mutation; there is
// no delta persistence. Last write wins across concurrent sessions.
const QUpsertDraft = `--sql 3d1c2b7a-9e4f-4c1a-b6d2-0a8f5e7c9d11
insert into drafts (user_id, draft, updated_at)
values ($1::uuid, $2::jsonb, now())
on conflict (user_id) do update set
    draft = excluded.draft,
    updated_at = now();
`

const QSelectDraft = `--sql 7e2a4f90-1b3c-4d5e-8f6a-2c4b6d8e0f13
select draft
from drafts
where user_id = $1::uuid;
`

const QDeleteDraft = `--sql 9f3b5c1d-2e4a-4b6c-8d0e-1f3a5b7c9e15
delete from drafts
where user_id = $1::uuid;
`
