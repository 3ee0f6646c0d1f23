package sqlinline

const QInsertBatch = `--sql 3a4b5c6d-7e8f-4a0b-d9c2-3e4f5a6b7c41
insert into batch_imports (id, user_id, status, total_items, created_at, updated_at)
values (gen_random_uuid(), $1::uuid, 'PROCESSING', $2::int, now(), now())
returning id;
`

const QInsertBatchItem = `--sql 4b5c6d7e-8f9a-4b1c-ead3-4f5a6b7c8d43
insert into batch_import_items (batch_id, item_order, source_url, status)
values ($1::uuid, $2::int, $3::text, 'PENDING');
`

const QSelectBatch = `--sql 5c6d7e8f-9a0b-4c2d-fbe4-5a6b7c8d9e45
select
    b.id,
    b.user_id,
    b.status,
    b.total_items,
    count(*) filter (where i.status in ('COMPLETED', 'FAILED'))  as processed_items,
    count(*) filter (where i.status = 'COMPLETED')               as completed_items,
    count(*) filter (where i.status = 'FAILED')                  as failed_items,
    b.created_at,
    b.updated_at
from batch_imports b
left join batch_import_items i on i.batch_id = b.id
where b.id = $1::uuid and b.user_id = $2::uuid
group by b.id;
`

const QSelectBatchItems = `--sql 6d7e8f9a-0b1c-4d3e-acf5-6b7c8d9e0f47
select item_order, source_url, status, job_id, error
from batch_import_items
where batch_id = $1::uuid
order by item_order asc;
`

const QClaimBatchItem = `--sql 7e8f9a0b-1c2d-4e4f-bda6-7c8d9e0f1a49
with next_item as (
    select i.batch_id, i.item_order
    from batch_import_items i
    where i.status = 'PENDING'
    order by i.batch_id, i.item_order asc
    for update skip locked
    limit 1
),
updated as (
    update batch_import_items i
    set status = 'PROCESSING'
    where (i.batch_id, i.item_order) in (select batch_id, item_order from next_item)
    returning i.batch_id, i.item_order, i.source_url
)
select u.batch_id, u.item_order, u.source_url, b.user_id
from updated u
join batch_imports b on b.id = u.batch_id;
`

const QCompleteBatchItem = `--sql 8f9a0b1c-2d3e-4f5a-ceb7-8d9e0f1a2b51
update batch_import_items
set status = 'COMPLETED', job_id = $3::uuid
where batch_id = $1::uuid and item_order = $2::int;
`

const QFailBatchItem = `--sql 9a0b1c2d-3e4f-4a6b-dfc8-9e0f1a2b3c53
update batch_import_items
set status = 'FAILED', error = $3::text
where batch_id = $1::uuid and item_order = $2::int;
`

// The batch goes terminal only when no item is pending or processing. It is
// FAILED only when every item failed; partial failure still completes.
const QFinalizeBatch = `--sql 0b1c2d3e-4f5a-4b7c-ead9-0f1a2b3c4d55
update batch_imports b
set status = case
        when (select count(*) from batch_import_items i where i.batch_id = b.id and i.status = 'FAILED') = b.total_items
        then 'FAILED'
        else 'COMPLETED'
    end,
    updated_at = now()
where b.id = $1::uuid
  and b.status = 'PROCESSING'
  and not exists (
      select 1 from batch_import_items i
      where i.batch_id = b.id and i.status in ('PENDING', 'PROCESSING')
  );
`
