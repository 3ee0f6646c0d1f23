package sqlinline

const QStatsSummary = `--sql 3e4f5a6b-7c8d-4eaf-bdac-3c4d5e6f7a61
select
  (select count(*) from content_kit_jobs)                                                    as kits_total,
  (select count(*) from content_kit_jobs where status = 'COMPLETED')                         as kits_completed,
  (select count(*) from content_kit_jobs where status = 'FAILED')                            as kits_failed,
  (select count(*) from content_kit_jobs where created_at > now() - interval '24 hours')     as kits_last24,
  (select count(*) from batch_imports)                                                       as batches_total,
  (select count(*) from schedules)                                                           as schedules_total;
`
