package postgres

// schema is applied on New; all statements are idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS persons (
    id            BIGSERIAL PRIMARY KEY,
    name          TEXT NOT NULL UNIQUE,
    description   TEXT,
    photo_url     TEXT,
    creation_time TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS tags (
    id            BIGSERIAL PRIMARY KEY,
    name          TEXT NOT NULL UNIQUE,
    description   TEXT,
    creation_time TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS dreams (
    id                  BIGSERIAL PRIMARY KEY,
    description         TEXT NOT NULL,
    dream_date          TEXT,
    interpretation      TEXT,
    generated_image_url TEXT,
    creation_time       TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS dream_persons (
    dream_id  BIGINT NOT NULL REFERENCES dreams(id)  ON DELETE CASCADE,
    person_id BIGINT NOT NULL REFERENCES persons(id) ON DELETE CASCADE,
    PRIMARY KEY (dream_id, person_id)
);

CREATE TABLE IF NOT EXISTS dream_tags (
    dream_id BIGINT NOT NULL REFERENCES dreams(id) ON DELETE CASCADE,
    tag_id   BIGINT NOT NULL REFERENCES tags(id)   ON DELETE CASCADE,
    PRIMARY KEY (dream_id, tag_id)
);

CREATE INDEX IF NOT EXISTS idx_dream_persons_person ON dream_persons(person_id);
CREATE INDEX IF NOT EXISTS idx_dream_tags_tag       ON dream_tags(tag_id);
CREATE INDEX IF NOT EXISTS idx_dreams_creation_time ON dreams(creation_time);
`
