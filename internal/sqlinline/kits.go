package sqlinline

const QEnqueueKitJob = `--sql 6f7a8b9c-0d1e-4f3a-c25b-6d7e8f9a0b27
insert into content_kit_jobs (id, user_id, input_type, status, request, created_at, updated_at)
values (gen_random_uuid(), $1::uuid, $2::text, 'INITIATED', $3::jsonb, now(), now())
returning id;
`

const QSelectKitStatus = `--sql 7a8b9c0d-1e2f-4a4b-d36c-7e8f9a0b1c29
select id, user_id, input_type, status, progress, outputs, error_message, created_at, updated_at
from content_kit_jobs
where id = $1::uuid and user_id = $2::uuid;
`

const QSelectKitOutputs = `--sql 8b9c0d1e-2f3a-4b5c-e47d-8f9a0b1c2d31
select outputs
from content_kit_jobs
where id = $1::uuid and user_id = $2::uuid and status = 'COMPLETED';
`

// Claim follows the queue pattern: oldest INITIATED job, skipping rows other
// workers hold.
const QClaimKitJob = `--sql 9c0d1e2f-3a4b-4c6d-f58e-9a0b1c2d3e33
with next_job as (
    select id
    from content_kit_jobs
    where status = 'INITIATED'
    order by created_at asc
    for update skip locked
    limit 1
),
updated as (
    update content_kit_jobs
    set status = 'PROCESSING', updated_at = now()
    where id in (select id from next_job)
    returning id, user_id, input_type, request
)
select * from updated;
`

// Used when a job is created and processed in the same worker iteration
// (batch items) instead of going through the claim queue.
const QStartKitJob = `--sql 4a5b6c7d-8e9f-4a1b-c2d3-4e5f6a7b8c63
update content_kit_jobs
set status = 'PROCESSING', updated_at = now()
where id = $1::uuid and status = 'INITIATED';
`

const QUpdateKitProgress = `--sql 0d1e2f3a-4b5c-4d7e-a69f-0b1c2d3e4f35
update content_kit_jobs
set progress = $2::jsonb, updated_at = now()
where id = $1::uuid;
`

const QCompleteKitJob = `--sql 1e2f3a4b-5c6d-4e8f-b7a0-1c2d3e4f5a37
update content_kit_jobs
set status = 'COMPLETED', outputs = $2::jsonb, progress = $3::jsonb, updated_at = now()
where id = $1::uuid and status = 'PROCESSING';
`

const QFailKitJob = `--sql 2f3a4b5c-6d7e-4f9a-c8b1-2d3e4f5a6b39
update content_kit_jobs
set status = 'FAILED', error_message = $2::text, updated_at = now()
where id = $1::uuid and status = 'PROCESSING';
`
